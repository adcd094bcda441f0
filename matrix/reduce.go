package matrix

import (
	"fmt"

	"github.com/sseq/fp/config"
	"github.com/sseq/fp/utils"
	"github.com/sseq/fp/utils/logging"
)

// Method selects the row reduction algorithm.
type Method int

const (
	// MethodAuto uses M4RI over F_2 when the matrix is large and dense
	// enough according to the configuration, and Gauss-Jordan otherwise.
	MethodAuto Method = iota

	// MethodNaive is Gauss-Jordan elimination, one pivot at a time.
	MethodNaive

	// MethodM4RI is the method of the four Russians, batching pivots into
	// a table of their linear combinations. It only applies to p = 2; other
	// primes fall back to MethodNaive.
	MethodM4RI
)

// String returns a human-readable name for the method.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodNaive:
		return "naive"
	case MethodM4RI:
		return "m4ri"
	default:
		return "unknown"
	}
}

// Options parameterizes [Matrix.RowReduceWith].
type Options struct {
	Method Method

	// Batch is the number of pivots per M4RI table. Zero selects the
	// configured default.
	Batch int
}

// RowReduce puts the matrix in reduced row echelon form, fills its pivot
// table and returns its rank. Pivot rows are ordered by pivot column and
// followed by the zero rows.
func (m *Matrix) RowReduce() int {
	return m.RowReduceWith(Options{})
}

// RowReduceWith is [Matrix.RowReduce] with explicit options. Every method
// yields the same reduced matrix and pivot table.
func (m *Matrix) RowReduceWith(opts Options) (rank int) {
	cfg := config.Global()

	k := opts.Batch
	if k == 0 {
		k = cfg.M4RIBatch
	}
	if k < 1 || k > config.MaxM4RIBatch {
		panic(fmt.Errorf("cannot RowReduceWith: M4RI batch %d outside of [1, %d]", k, config.MaxM4RIBatch))
	}

	method := m.selectMethod(opts.Method, cfg)

	logging.Named("matrix").V(2).Info("row reduce",
		"method", method.String(),
		"prime", m.p.Value(),
		"rows", len(m.rows),
		"columns", m.columns)

	if method == MethodM4RI {
		return m.rowReduceM4RI(k)
	}
	return m.rowReduceNaive()
}

func (m *Matrix) selectMethod(method Method, cfg config.Config) Method {
	if m.p.Value() != 2 {
		return MethodNaive
	}
	switch method {
	case MethodAuto:
		if len(m.rows) >= cfg.M4RIMinRows && m.columns >= cfg.M4RIMinColumns && m.Density() >= cfg.M4RIMinDensity {
			return MethodM4RI
		}
		return MethodNaive
	default:
		return method
	}
}

func (m *Matrix) resetPivots() {
	m.pivots = make([]int, m.columns)
	utils.Fill(m.pivots, NoPivot)
}

// rowReduceNaive is Gauss-Jordan elimination. For each column, the first
// row at or below the current pivot row with a nonzero entry in that column
// becomes the pivot row: it is normalized and the column is cleared from
// every other row, above and below.
func (m *Matrix) rowReduceNaive() int {
	m.resetPivots()

	p := m.p
	pivot := 0
	for col := 0; col < m.columns && pivot < len(m.rows); col++ {
		found := -1
		for i := pivot; i < len(m.rows); i++ {
			if m.rows[i].Entry(col) != 0 {
				found = i
				break
			}
		}
		if found < 0 {
			continue
		}

		m.rows[pivot], m.rows[found] = m.rows[found], m.rows[pivot]

		// The pivot row is zero before col.
		row := m.rows[pivot]
		row.SliceMut(col, m.columns).Scale(p.Inverse(row.Entry(col)))

		src := row.Slice(col, m.columns)
		for i, other := range m.rows {
			if i == pivot {
				continue
			}
			if e := other.Entry(col); e != 0 {
				other.SliceMut(col, m.columns).Add(src, p.Negate(e))
			}
		}

		m.pivots[col] = pivot
		pivot++
	}

	return pivot
}
