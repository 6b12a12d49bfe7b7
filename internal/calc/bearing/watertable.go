package bearing

type Overburden struct {
	QAdjusted      float64 `json:"q_adjusted"`
	GammaEffective float64 `json:"gamma_effective"`
}

// AdjustForWaterTable returns the overburden pressure at the footing base and
// the unit weight acting in the failure zone below it. Lengths are in cm,
// unit weights in kg/cm³. dw is nil when there is no water table; gammaPrime
// is the submerged unit weight (γsat - γw).
//
// Below the base the water table stops mattering once it is a full footing
// width down; in between, γeff is blended linearly from γ' to γ.
func AdjustForWaterTable(gamma, gammaPrime, df float64, dw *float64, b float64) Overburden {
	if dw == nil {
		return Overburden{QAdjusted: gamma * df, GammaEffective: gamma}
	}
	w := *dw
	switch {
	case w < df:
		return Overburden{
			QAdjusted:      gamma*w + gammaPrime*(df-w),
			GammaEffective: gammaPrime,
		}
	case w == df:
		return Overburden{QAdjusted: gamma * df, GammaEffective: gammaPrime}
	default:
		d := w - df
		if d >= b {
			return Overburden{QAdjusted: gamma * df, GammaEffective: gamma}
		}
		return Overburden{
			QAdjusted:      gamma * df,
			GammaEffective: gammaPrime + (d/b)*(gamma-gammaPrime),
		}
	}
}
