package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// ModalMatrix carries a small complex linear system, solved through the
// sparse LU package. The analysis package uses it for the 3×3 map from
// initial conditions to modal coefficients. Rows and columns are 1-based,
// matching the solver's indexing.
type ModalMatrix struct {
	Size    int
	matrix  *sparse.Matrix
	rhs     []float64
	rhsImag []float64
	config  *sparse.Configuration
}

func NewModal(size int) (*ModalMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating modal matrix: %v", err)
	}

	return &ModalMatrix{
		Size:    size,
		matrix:  mat,
		rhs:     make([]float64, size+1), // 1-based indexing
		rhsImag: make([]float64, size+1),
		config:  config,
	}, nil
}

func (m *ModalMatrix) SetElement(i, j int, value complex128) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real = real(value)
	element.Imag = imag(value)
}

func (m *ModalMatrix) SetRHS(i int, value complex128) {
	if i <= 0 || i > m.Size {
		return
	}
	m.rhs[i] = real(value)
	m.rhsImag[i] = imag(value)
}

// Solve factors and solves the system, returning the solution as complex
// values indexed 0..Size-1.
func (m *ModalMatrix) Solve() ([]complex128, error) {
	if err := m.matrix.Factor(); err != nil {
		return nil, fmt.Errorf("matrix factorization failed: %v", err)
	}

	solReal, solImag, err := m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	solution := make([]complex128, m.Size)
	for i := 1; i <= m.Size; i++ {
		solution[i-1] = complex(solReal[i], solImag[i])
	}
	return solution, nil
}

func (m *ModalMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
