package bvd

import "errors"

var (
	// ErrInvalidParameter indicates a non-positive circuit parameter
	// (rs, ls, cs, c0, or a finite rp).
	ErrInvalidParameter = errors.New("bvd: non-positive circuit parameter")

	// ErrInvalidRange indicates a resistance search range whose lower bound is
	// not below the upper bound, or a non-positive bound.
	ErrInvalidRange = errors.New("bvd: invalid resistance range")

	// ErrInvalidBoost indicates a boost voltage not exceeding the
	// continuous-wave voltage, or a switching time without a boost voltage.
	ErrInvalidBoost = errors.New("bvd: invalid boost configuration")

	// ErrInvalidTime indicates a negative time argument.
	ErrInvalidTime = errors.New("bvd: negative time")

	// ErrUnstableSystem indicates a characteristic root with positive real
	// part beyond numerical tolerance (non-physical parameter combination).
	ErrUnstableSystem = errors.New("bvd: unstable system")
)
