package bearing

import "strconv"

type Line struct {
	Label string
	Value string
	Unit  string
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Lines renders res for display: pressures to 3 decimals, unit weights to 4,
// Nc and Nq to 2, Nγ to 3.
func (r Result) Lines() []Line {
	lines := []Line{
		{Label: "Nc", Value: fixed(r.Nc, 2)},
		{Label: "Nq", Value: fixed(r.Nq, 2)},
		{Label: "Nγ", Value: fixed(r.Ng, 3)},
		{Label: "c_eff", Value: fixed(r.EffectiveCohesion, 3), Unit: r.StressLabel},
	}
	gp := "-"
	if r.GammaPrime != nil {
		gp = fixed(*r.GammaPrime, 4)
	}
	return append(lines,
		Line{Label: "γ'", Value: gp, Unit: r.DensityLabel},
		Line{Label: "q_adj", Value: fixed(r.QAdjusted, 3), Unit: r.StressLabel},
		Line{Label: "γ_eff", Value: fixed(r.GammaEffective, 4), Unit: r.DensityLabel},
		Line{Label: "qult", Value: fixed(r.Qult, 3), Unit: r.StressLabel},
		Line{Label: "qall", Value: fixed(r.Qall, 3), Unit: r.StressLabel},
	)
}
