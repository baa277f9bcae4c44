package consts

const (
	StabilityTol   = 1e-12 // eigenvalue real part above this is treated as unstable
	ZeroModeTol    = 1e-9  // |Re| below this is the open-circuit charge mode
	SettleFraction = 0.982 // amplitude fraction reached at the 4-tau point
)
