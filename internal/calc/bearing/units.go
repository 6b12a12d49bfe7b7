package bearing

import "log/slog"

type UnitKind string

const (
	Stress  UnitKind = "stress"
	Density UnitKind = "density"
)

// Base units: kg/cm² for stress, kg/cm³ for density, cm for length.
var unitFactors = map[UnitKind]map[string]float64{
	Stress: {
		"kgcm2": 1,
		"tonm2": 0.1,
		"knm2":  0.0101972,
	},
	Density: {
		"kgcm3": 1,
		"tonm3": 0.001,
		"knm3":  0.00010197,
	},
}

var unitLabels = map[UnitKind]map[string]string{
	Stress: {
		"kgcm2": "kg/cm²",
		"tonm2": "Ton/m²",
		"knm2":  "kN/m²",
	},
	Density: {
		"kgcm3": "kg/cm³",
		"tonm3": "Ton/m³",
		"knm3":  "kN/m³",
	},
}

const cmPerMetre = 100.0

func factor(kind UnitKind, unit string) (float64, bool) {
	f, ok := unitFactors[kind][unit]
	if !ok || f == 0 {
		logger.Warn("unknown unit, value left in base units",
			slog.String("kind", string(kind)),
			slog.String("unit", unit))
		return 1, false
	}
	return f, true
}

// ToBase converts value from unit into the base unit of kind. An unknown
// unit leaves the value unchanged and logs a warning.
func ToBase(value float64, kind UnitKind, unit string) float64 {
	f, _ := factor(kind, unit)
	return value * f
}

// FromBase is the inverse of ToBase.
func FromBase(value float64, kind UnitKind, unit string) float64 {
	f, _ := factor(kind, unit)
	return value / f
}

// KnownUnit reports whether unit is in the table for kind.
func KnownUnit(kind UnitKind, unit string) bool {
	_, ok := unitFactors[kind][unit]
	return ok
}

// UnitLabel returns the display label for unit, or the code itself.
func UnitLabel(kind UnitKind, unit string) string {
	if l, ok := unitLabels[kind][unit]; ok {
		return l
	}
	return unit
}

func metresToCm(m float64) float64 {
	return m * cmPerMetre
}
