package bearing

import (
	"fmt"
	"math"
)

type Input struct {
	Shape               Shape       `json:"shape" yaml:"shape"`
	FailureMode         FailureMode `json:"failureMode" yaml:"failure_mode"`
	Cohesion            *float64    `json:"cohesion" yaml:"cohesion"`
	CohesionUnit        string      `json:"cohesionUnit" yaml:"cohesion_unit"`
	FrictionAngle       *float64    `json:"frictionAngle" yaml:"friction_angle"`
	SoilUnitWeight      *float64    `json:"soilUnitWeight" yaml:"soil_unit_weight"`
	SoilUnitWeightUnit  string      `json:"soilUnitWeightUnit" yaml:"soil_unit_weight_unit"`
	WidthM              *float64    `json:"width" yaml:"width_m"`
	DepthM              *float64    `json:"depth" yaml:"depth_m"`
	SafetyFactor        *float64    `json:"safetyFactor" yaml:"safety_factor"`
	WaterTableDepthM    *float64    `json:"gwtDepth,omitempty" yaml:"water_table_depth_m,omitempty"`
	SaturatedUnitWeight *float64    `json:"saturatedUnitWeight,omitempty" yaml:"saturated_unit_weight,omitempty"`
	SaturatedUnit       string      `json:"saturatedUnitWeightUnit,omitempty" yaml:"saturated_unit_weight_unit,omitempty"`
	WaterUnitWeight     *float64    `json:"waterUnitWeight,omitempty" yaml:"water_unit_weight,omitempty"`
	WaterUnit           string      `json:"waterUnitWeightUnit,omitempty" yaml:"water_unit_weight_unit,omitempty"`
}

// Result values are in the unit of the cohesion input (pressures) and of the
// soil unit weight input (densities).
type Result struct {
	Nc                float64  `json:"nc"`
	Nq                float64  `json:"nq"`
	Ng                float64  `json:"ng"`
	EffectiveCohesion float64  `json:"effectiveCohesion"`
	GammaPrime        *float64 `json:"gammaPrime,omitempty"`
	QAdjusted         float64  `json:"qAdjusted"`
	GammaEffective    float64  `json:"gammaEffective"`
	Qult              float64  `json:"qult"`
	Qall              float64  `json:"qall"`
	Formula           string   `json:"formula"`
	StressUnit        string   `json:"stressUnit"`
	StressLabel       string   `json:"stressLabel"`
	DensityUnit       string   `json:"densityUnit"`
	DensityLabel      string   `json:"densityLabel"`
	// UnknownUnits names the unit fields whose code was not recognised and
	// whose value was therefore taken as already in base units.
	UnknownUnits []string `json:"unknownUnits,omitempty"`
}

// ValidationError names the input field that violated its constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) FieldName() string {
	return e.Field
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Float returns a pointer to v, for filling optional Input fields.
func Float(v float64) *float64 {
	return &v
}

// params holds a validated input converted to base units.
type params struct {
	shape         Shape
	mode          FailureMode
	c             float64
	phi           float64
	gamma         float64
	gammaPrime    float64
	b, df         float64
	dw            *float64
	sf            float64
	stressUnit    string
	densityUnit   string
	hasWaterTable bool
	unknownUnits  []string
}

func required(v *float64, field string) (float64, error) {
	if v == nil {
		return 0, invalid(field, "is required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, invalid(field, "must be a finite number")
	}
	return *v, nil
}

func unitOrBase(unit string, kind UnitKind) string {
	if unit != "" {
		return unit
	}
	if kind == Stress {
		return "kgcm2"
	}
	return "kgcm3"
}

func (p *params) checkUnit(field string, kind UnitKind, unit string) {
	if !KnownUnit(kind, unit) {
		p.unknownUnits = append(p.unknownUnits, field)
	}
}

// Validate checks in against the documented domains without computing anything.
func Validate(in Input) error {
	_, err := prepare(in)
	return err
}

func prepare(in Input) (params, error) {
	var p params
	if !in.Shape.valid() {
		return p, invalid("shape", "must be one of strip, square, circular (got %q)", in.Shape)
	}
	if !in.FailureMode.valid() {
		return p, invalid("failureMode", "must be general or local (got %q)", in.FailureMode)
	}

	c, err := required(in.Cohesion, "cohesion")
	if err != nil {
		return p, err
	}
	phi, err := required(in.FrictionAngle, "frictionAngle")
	if err != nil {
		return p, err
	}
	gamma, err := required(in.SoilUnitWeight, "soilUnitWeight")
	if err != nil {
		return p, err
	}
	b, err := required(in.WidthM, "width")
	if err != nil {
		return p, err
	}
	df, err := required(in.DepthM, "depth")
	if err != nil {
		return p, err
	}
	sf, err := required(in.SafetyFactor, "safetyFactor")
	if err != nil {
		return p, err
	}

	if c < 0 {
		return p, invalid("cohesion", "must not be negative")
	}
	if phi < minPhi || phi > maxPhi {
		return p, invalid("frictionAngle", "must be between 0 and 50 degrees (got %g)", phi)
	}
	if sf <= 0 {
		return p, invalid("safetyFactor", "must be greater than 0")
	}
	if b <= 0 {
		return p, invalid("width", "must be greater than 0")
	}
	if df < 0 {
		return p, invalid("depth", "must not be negative")
	}

	p.hasWaterTable = in.WaterTableDepthM != nil
	var dw, gammaSat, gammaW float64
	if p.hasWaterTable {
		if dw, err = required(in.WaterTableDepthM, "gwtDepth"); err != nil {
			return p, err
		}
		if dw < 0 {
			return p, invalid("gwtDepth", "must not be negative")
		}
		if in.SaturatedUnitWeight == nil {
			return p, invalid("saturatedUnitWeight", "is required when gwtDepth is given")
		}
		if in.WaterUnitWeight == nil {
			return p, invalid("waterUnitWeight", "is required when gwtDepth is given")
		}
		if gammaSat, err = required(in.SaturatedUnitWeight, "saturatedUnitWeight"); err != nil {
			return p, err
		}
		if gammaW, err = required(in.WaterUnitWeight, "waterUnitWeight"); err != nil {
			return p, err
		}
	}

	p.shape, p.mode = in.Shape, in.FailureMode
	p.stressUnit = unitOrBase(in.CohesionUnit, Stress)
	p.densityUnit = unitOrBase(in.SoilUnitWeightUnit, Density)
	p.checkUnit("cohesionUnit", Stress, p.stressUnit)
	p.checkUnit("soilUnitWeightUnit", Density, p.densityUnit)
	p.c = ToBase(c, Stress, p.stressUnit)
	p.phi = phi
	p.gamma = ToBase(gamma, Density, p.densityUnit)
	p.b = metresToCm(b)
	p.df = metresToCm(df)
	p.sf = sf

	if p.gamma <= 0 {
		return p, invalid("soilUnitWeight", "must be greater than 0")
	}
	if p.hasWaterTable {
		p.checkUnit("saturatedUnitWeightUnit", Density, unitOrBase(in.SaturatedUnit, Density))
		p.checkUnit("waterUnitWeightUnit", Density, unitOrBase(in.WaterUnit, Density))
		gammaSat = ToBase(gammaSat, Density, unitOrBase(in.SaturatedUnit, Density))
		gammaW = ToBase(gammaW, Density, unitOrBase(in.WaterUnit, Density))
		if gammaSat <= 0 {
			return p, invalid("saturatedUnitWeight", "must be greater than 0")
		}
		if gammaW <= 0 {
			return p, invalid("waterUnitWeight", "must be greater than 0")
		}
		if gammaSat < gammaW {
			return p, invalid("saturatedUnitWeight", "must not be less than waterUnitWeight")
		}
		p.gammaPrime = gammaSat - gammaW
		dwCm := metresToCm(dw)
		p.dw = &dwCm
	}
	return p, nil
}

// Calculate validates in and evaluates the ultimate and allowable bearing
// capacity. A *ValidationError is returned before any computation; an
// *InterpolationError (wrapped) if the factor table cannot bracket phi.
func Calculate(in Input) (Result, error) {
	p, err := prepare(in)
	if err != nil {
		return Result{}, err
	}

	table := generalShear
	if p.mode == Local {
		table = localShear
	}
	f, err := Interpolate(p.phi, table)
	if err != nil {
		return Result{}, fmt.Errorf("bearing factors: %w", err)
	}

	ob := AdjustForWaterTable(p.gamma, p.gammaPrime, p.df, p.dw, p.b)
	qc := UltimateCapacity(p.shape, p.mode, p.c, f, ob.QAdjusted, ob.GammaEffective, p.b)
	qall := qc.Qult / p.sf

	res := Result{
		Nc:                f.Nc,
		Nq:                f.Nq,
		Ng:                f.Ng,
		EffectiveCohesion: FromBase(qc.EffectiveCohesion, Stress, p.stressUnit),
		QAdjusted:         FromBase(ob.QAdjusted, Stress, p.stressUnit),
		GammaEffective:    FromBase(ob.GammaEffective, Density, p.densityUnit),
		Qult:              FromBase(qc.Qult, Stress, p.stressUnit),
		Qall:              FromBase(qall, Stress, p.stressUnit),
		Formula:           qc.Formula,
		StressUnit:        p.stressUnit,
		StressLabel:       UnitLabel(Stress, p.stressUnit),
		DensityUnit:       p.densityUnit,
		DensityLabel:      UnitLabel(Density, p.densityUnit),
		UnknownUnits:      p.unknownUnits,
	}
	if p.hasWaterTable {
		res.GammaPrime = Float(FromBase(p.gammaPrime, Density, p.densityUnit))
	}
	return res, nil
}
