package eigen

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/soniclab/transientbvd/pkg/bvd"
)

// Coefficients builds the characteristic cubic s³ + a2·s² + a1·s + a0 of the
// circuit. Open-circuit termination drops the damping branch, which zeroes
// the constant term and leaves an exact zero root: the charge-conservation
// mode on C0, not an instability.
func Coefficients(p bvd.Params) (a2, a1, a0 float64, err error) {
	if err = p.Validate(); err != nil {
		return 0, 0, 0, err
	}

	if p.OpenCircuit() {
		a2 = p.Rs / p.Ls
		a1 = 1/(p.Ls*p.Cs) + 1/(p.Ls*p.C0)
		return a2, a1, 0, nil
	}

	a2 = p.Rs/p.Ls + 1/(p.Rp*p.C0)
	a1 = p.Rs/(p.Rp*p.Ls*p.C0) + 1/(p.Ls*p.Cs) + 1/(p.Ls*p.C0)
	a0 = 1 / (p.Ls * p.Cs * p.Rp * p.C0)
	return a2, a1, a0, nil
}

// Roots returns the three roots of the characteristic cubic, computed
// numerically as the eigenvalues of the companion matrix and sorted
// descending by (real part, imaginary part). Callers that rely on a
// positional mode (e.g. the second root) depend on this fixed ordering.
// Each call recomputes from the parameters; nothing is cached.
func Roots(p bvd.Params) ([3]complex128, error) {
	var rts [3]complex128

	a2, a1, a0, err := Coefficients(p)
	if err != nil {
		return rts, err
	}

	companion := mat.NewDense(3, 3, []float64{
		-a2, -a1, -a0,
		1, 0, 0,
		0, 1, 0,
	})

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return rts, fmt.Errorf("eigen: factorization failed for coefficients [%g %g %g]", a2, a1, a0)
	}
	copy(rts[:], eig.Values(nil))

	sort.Slice(rts[:], func(i, j int) bool {
		if real(rts[i]) != real(rts[j]) {
			return real(rts[i]) > real(rts[j])
		}
		return imag(rts[i]) > imag(rts[j])
	})

	return rts, nil
}
