package util

import "math"

const (
	minimizeXatol   = 1e-5
	minimizeMaxEval = 500
)

// MinimizeBounded finds a minimum of f on [lo, hi] using Brent's bounded
// method: golden-section steps, switching to parabolic interpolation where
// the fit stays inside the bracket. For a unimodal f this converges to the
// global minimum on the interval. Returns the abscissa and f at the minimum.
func MinimizeBounded(f func(float64) float64, lo, hi float64) (float64, float64) {
	const goldenMean = 0.381966011250105 // (3 - sqrt(5)) / 2
	sqrtEps := math.Sqrt(2.2e-16)

	a, b := lo, hi
	fulc := a + goldenMean*(b-a)
	nfc, xf := fulc, fulc
	rat, e := 0.0, 0.0
	x := xf
	fx := f(x)
	nEval := 1
	ffulc, fnfc := fx, fx
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + minimizeXatol/3
	tol2 := 2 * tol1

	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		goldenStep := true

		// Try a parabolic fit through the three best points.
		if math.Abs(e) > tol1 {
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				goldenStep = false
				rat = p / q
				x = xf + rat
				if x-a < tol2 || b-x < tol2 {
					rat = tol1 * sign(xm-xf)
				}
			}
		}

		if goldenStep {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}

		x = xf + sign(rat)*math.Max(math.Abs(rat), tol1)
		fu := f(x)
		nEval++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			switch {
			case fu <= fnfc || nfc == xf:
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			case fu <= ffulc || fulc == xf || fulc == nfc:
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + minimizeXatol/3
		tol2 = 2 * tol1

		if nEval >= minimizeMaxEval {
			break
		}
	}

	return xf, fx
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
