package bearing

import (
	"fmt"
	"math"
)

const (
	minPhi = 0.0
	maxPhi = 50.0
)

type Factors struct {
	Nc float64 `json:"nc"`
	Nq float64 `json:"nq"`
	Ng float64 `json:"ng"`
}

// InterpolationError means the factor table could not bracket phi.
type InterpolationError struct {
	Phi    float64
	Reason string
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("interpolation failed at phi=%g: %s", e.Phi, e.Reason)
}

// FactorTable returns a copy of the tabulated factors for mode.
func FactorTable(mode FailureMode) []FactorRow {
	src := generalShear
	if mode == Local {
		src = localShear
	}
	out := make([]FactorRow, len(src))
	copy(out, src)
	return out
}

// Interpolate returns Nc, Nq and Nγ at phi by linear interpolation between
// the tightest bracketing rows of table. phi is clamped to [0, 50] and
// values outside the tabulated range take the nearest endpoint row.
func Interpolate(phi float64, table []FactorRow) (Factors, error) {
	phi = math.Max(minPhi, math.Min(maxPhi, phi))
	if len(table) == 0 {
		return Factors{}, &InterpolationError{Phi: phi, Reason: "empty factor table"}
	}
	for i := 1; i < len(table); i++ {
		if table[i].Phi <= table[i-1].Phi {
			return Factors{}, &InterpolationError{Phi: phi, Reason: "factor table is not strictly increasing in phi"}
		}
	}

	var lower, upper *FactorRow
	for i := range table {
		if table[i].Phi <= phi {
			lower = &table[i]
		}
		if table[i].Phi >= phi && upper == nil {
			upper = &table[i]
		}
	}
	if lower == nil && upper != nil {
		lower = upper
	}
	if upper == nil && lower != nil {
		upper = lower
	}
	if lower == nil || upper == nil {
		return Factors{}, &InterpolationError{Phi: phi, Reason: "no bracketing rows"}
	}

	if lower.Phi == phi || upper.Phi == lower.Phi {
		return Factors{Nc: lower.Nc, Nq: lower.Nq, Ng: lower.Ng}, nil
	}
	if upper.Phi == phi {
		return Factors{Nc: upper.Nc, Nq: upper.Nq, Ng: upper.Ng}, nil
	}

	t := (phi - lower.Phi) / (upper.Phi - lower.Phi)
	lerp := func(a, b float64) float64 { return a + t*(b-a) }
	return Factors{
		Nc: lerp(lower.Nc, upper.Nc),
		Nq: lerp(lower.Nq, upper.Nq),
		Ng: lerp(lower.Ng, upper.Ng),
	}, nil
}
