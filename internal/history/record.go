package history

import (
	"strconv"
	"time"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

// Headers is the fixed header row of the Calculations sheet.
var Headers = []string{
	"Timestamp",
	"Description",
	"Foundation Type",
	"Failure Type",
	"Cohesion (c)",
	"Friction Angle (φ)",
	"Soil Unit Weight (γ)",
	"Width/Diameter (B)",
	"Depth (Df)",
	"Safety Factor (SF)",
	"Water Table Depth (Dw)",
	"Saturated Unit Weight (γsat)",
	"Water Unit Weight (γw)",
	"Ultimate Bearing Capacity (qult)",
	"Allowable Bearing Capacity (qall)",
}

// Record is one flattened calculation as stored in the workbook. Inputs are
// kept in the units the user entered them; qult and qall are in the cohesion unit.
type Record struct {
	Description         string  `json:"description"`
	FoundationType      string  `json:"foundationType"`
	FailureType         string  `json:"failureType"`
	Cohesion            float64 `json:"cohesion"`
	FrictionAngle       float64 `json:"frictionAngle"`
	SoilUnitWeight      float64 `json:"soilUnitWeight"`
	Width               float64 `json:"width"`
	Depth               float64 `json:"depth"`
	SafetyFactor        float64 `json:"safetyFactor"`
	GwtDepth            float64 `json:"gwtDepth"`
	SaturatedUnitWeight float64 `json:"saturatedUnitWeight"`
	WaterUnitWeight     float64 `json:"waterUnitWeight"`
	Qult                float64 `json:"qult"`
	Qall                float64 `json:"qall"`
}

type Entry struct {
	RowIndex  int       `json:"rowIndex"`
	Timestamp time.Time `json:"timestamp"`
	Record
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// RecordFromCalculation flattens a calculation into a history row. Missing
// water-table values are stored as 0.
func RecordFromCalculation(in bearing.Input, res bearing.Result, description string) Record {
	return Record{
		Description:         description,
		FoundationType:      string(in.Shape),
		FailureType:         string(in.FailureMode),
		Cohesion:            deref(in.Cohesion),
		FrictionAngle:       deref(in.FrictionAngle),
		SoilUnitWeight:      deref(in.SoilUnitWeight),
		Width:               deref(in.WidthM),
		Depth:               deref(in.DepthM),
		SafetyFactor:        deref(in.SafetyFactor),
		GwtDepth:            deref(in.WaterTableDepthM),
		SaturatedUnitWeight: deref(in.SaturatedUnitWeight),
		WaterUnitWeight:     deref(in.WaterUnitWeight),
		Qult:                res.Qult,
		Qall:                res.Qall,
	}
}

func (r Record) row(ts time.Time) []interface{} {
	return []interface{}{
		ts.Format(time.RFC3339),
		r.Description,
		r.FoundationType,
		r.FailureType,
		r.Cohesion,
		r.FrictionAngle,
		r.SoilUnitWeight,
		r.Width,
		r.Depth,
		r.SafetyFactor,
		r.GwtDepth,
		r.SaturatedUnitWeight,
		r.WaterUnitWeight,
		r.Qult,
		r.Qall,
	}
}

func parseEntry(rowIndex int, cells []string) Entry {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	num := func(i int) float64 {
		v, _ := strconv.ParseFloat(cell(i), 64)
		return v
	}
	ts, _ := time.Parse(time.RFC3339, cell(0))
	return Entry{
		RowIndex:  rowIndex,
		Timestamp: ts,
		Record: Record{
			Description:         cell(1),
			FoundationType:      cell(2),
			FailureType:         cell(3),
			Cohesion:            num(4),
			FrictionAngle:       num(5),
			SoilUnitWeight:      num(6),
			Width:               num(7),
			Depth:               num(8),
			SafetyFactor:        num(9),
			GwtDepth:            num(10),
			SaturatedUnitWeight: num(11),
			WaterUnitWeight:     num(12),
			Qult:                num(13),
			Qall:                num(14),
		},
	}
}
