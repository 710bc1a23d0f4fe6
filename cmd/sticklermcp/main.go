package main

import (
	"fmt"
	"log"
	"os"

	"github.com/awslabs/stickler/internal/config"
	"github.com/awslabs/stickler/internal/version"
	"github.com/awslabs/stickler/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const serverName = "stickler"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("STICKLER_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	dependencies := mcp.NewDependencies(cfg)

	// Register Stickler's tools
	mcp.RegisterTools(server, dependencies)

	log.Println(version.Info())
	log.Printf("Starting %s MCP server v%s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - compare_records: Recursive schema-bound record comparison")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
