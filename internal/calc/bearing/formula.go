package bearing

import "fmt"

type Shape string

const (
	Strip    Shape = "strip"
	Square   Shape = "square"
	Circular Shape = "circular"
)

type FailureMode string

const (
	General FailureMode = "general"
	Local   FailureMode = "local"
)

func (s Shape) valid() bool {
	return s == Strip || s == Square || s == Circular
}

func (m FailureMode) valid() bool {
	return m == General || m == Local
}

type Capacity struct {
	Qult              float64 `json:"qult"`
	EffectiveCohesion float64 `json:"effective_cohesion"`
	Formula           string  `json:"formula"`
}

// shape coefficients: cohesion term, unit-weight term
type coefficients struct {
	sc, sg float64
}

func shapeCoefficients(shape Shape, mode FailureMode) coefficients {
	switch shape {
	case Square:
		if mode == Local {
			return coefficients{sc: 0.867, sg: 0.4}
		}
		return coefficients{sc: 1.3, sg: 0.4}
	case Circular:
		if mode == Local {
			return coefficients{sc: 0.867, sg: 0.3}
		}
		return coefficients{sc: 1.3, sg: 0.3}
	default:
		return coefficients{sc: 1, sg: 0.5}
	}
}

// UltimateCapacity evaluates Terzaghi's equation for the given shape and
// failure mode. All arguments are in base units (kg/cm², kg/cm³, cm). Local
// shear uses c' = 2/3 c with the factors read at the original phi.
func UltimateCapacity(shape Shape, mode FailureMode, c float64, f Factors, q, gammaEff, b float64) Capacity {
	cEff := c
	if mode == Local {
		cEff = 2.0 / 3.0 * c
	}
	k := shapeCoefficients(shape, mode)
	qult := k.sc*cEff*f.Nc + q*f.Nq + k.sg*gammaEff*b*f.Ng
	return Capacity{
		Qult:              qult,
		EffectiveCohesion: cEff,
		Formula:           formulaLabel(k, mode),
	}
}

func formulaLabel(k coefficients, mode FailureMode) string {
	c, nc, nq, ng := "c", "Nc", "Nq", "Nγ"
	if mode == Local {
		c, nc, nq, ng = "c'", "N'c", "N'q", "N'γ"
	}
	cohesion := fmt.Sprintf("(%s × %s)", c, nc)
	if k.sc != 1 {
		cohesion = fmt.Sprintf("(%g × %s × %s)", k.sc, c, nc)
	}
	return fmt.Sprintf("qult = %s + (q_adj × %s) + (%g × γ_eff × B × %s)", cohesion, nq, k.sg, ng)
}
