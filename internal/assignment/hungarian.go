// Package assignment implements the optimal bipartite assignment used by
// the primitive-list and record-list comparators (§4.6, §4.7, §4.9).
// Any O(n^3) routine suffices per spec; this is the classical
// Kuhn-Munkres algorithm with row/column potentials, adapted to
// maximize total similarity over a rectangular matrix by padding with
// zero-similarity dummy rows/columns (§4.9 "Hungarian algorithm").
package assignment

import "math"

// Pair is one matched (row, column) index with its similarity score.
type Pair struct {
	Row, Col int
	Score    float64
}

// Result is the outcome of Solve: the matched pairs plus the unmatched
// row and column indices (§4.7 M, U_gt, U_pred).
type Result struct {
	Matches       []Pair
	UnmatchedRows []int
	UnmatchedCols []int
}

// Solve finds the assignment of rows to columns that maximizes the sum
// of matrix[row][col], where matrix is rows x cols (need not be
// square). Ties are broken deterministically: among assignments of
// equal total, Solve always returns the one the row-major Kuhn
// augmenting-path search finds first, holding entry order fixed (§4.6
// "Tie-breaking", §4.7 "Determinism").
//
// matrix must be rectangular (every row the same length); an empty
// matrix (0 rows or 0 cols) returns a Result with all indices
// unmatched.
func Solve(matrix [][]float64) Result {
	rows := len(matrix)
	cols := 0
	if rows > 0 {
		cols = len(matrix[0])
	}
	if rows == 0 || cols == 0 {
		res := Result{}
		for i := 0; i < rows; i++ {
			res.UnmatchedRows = append(res.UnmatchedRows, i)
		}
		for j := 0; j < cols; j++ {
			res.UnmatchedCols = append(res.UnmatchedCols, j)
		}
		return res
	}

	n := rows
	if cols > n {
		n = cols
	}

	// Pad to an n x n square matrix with zero-similarity dummy
	// rows/columns. A dummy assignment never contributes to the real
	// unmatched sets below.
	cost := make([][]float64, n)
	for i := 0; i < n; i++ {
		cost[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			var sim float64
			if i < rows && j < cols {
				sim = matrix[i][j]
			}
			// Kuhn-Munkres as implemented here minimizes; negate to
			// maximize similarity.
			cost[i][j] = -sim
		}
	}

	rowMatch, colMatch := kuhnMunkres(cost)

	res := Result{}
	matchedRows := make([]bool, rows)
	matchedCols := make([]bool, cols)
	for i := 0; i < rows; i++ {
		j := rowMatch[i]
		if j >= 0 && j < cols {
			res.Matches = append(res.Matches, Pair{Row: i, Col: j, Score: matrix[i][j]})
			matchedRows[i] = true
			matchedCols[j] = true
		}
	}
	for i := 0; i < rows; i++ {
		if !matchedRows[i] {
			res.UnmatchedRows = append(res.UnmatchedRows, i)
		}
	}
	for j := 0; j < cols; j++ {
		if !matchedCols[j] {
			res.UnmatchedCols = append(res.UnmatchedCols, j)
		}
	}
	_ = colMatch
	return res
}

// kuhnMunkres solves the square minimum-cost assignment problem using
// the O(n^3) Jacobi/Munkres potential method (1-indexed internally, the
// traditional presentation of this algorithm). Returns, for each row
// (0-indexed), the assigned column, and vice versa.
func kuhnMunkres(cost [][]float64) (rowMatch, colMatch []int) {
	n := len(cost)
	const inf = math.MaxFloat64 / 2

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)   // p[j] = row currently matched to column j (1-indexed columns)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowMatch = make([]int, n)
	for i := range rowMatch {
		rowMatch[i] = -1
	}
	colMatch = make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			rowMatch[p[j]-1] = j - 1
			colMatch[j-1] = p[j] - 1
		}
	}
	return rowMatch, colMatch
}
