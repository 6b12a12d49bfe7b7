package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
	"github.com/arenoe-studio/terzaghi-calculator/internal/history"
)

var ErrEmptySheet = errors.New("sheet has no data rows")

type column int

const (
	colDescription column = iota
	colShape
	colFailureMode
	colCohesion
	colCohesionUnit
	colFrictionAngle
	colSoilUnitWeight
	colSoilUnitWeightUnit
	colWidth
	colDepth
	colSafetyFactor
	colGwtDepth
	colSaturated
	colSaturatedUnit
	colWater
	colWaterUnit
)

// headerAliases maps normalised header text to a column. Both the API field
// names and the history workbook headers are accepted, so an exported
// history file imports as-is.
var headerAliases = map[string]column{
	"description":             colDescription,
	"name":                    colDescription,
	"shape":                   colShape,
	"failuremode":             colFailureMode,
	"cohesion":                colCohesion,
	"cohesionunit":            colCohesionUnit,
	"frictionangle":           colFrictionAngle,
	"phi":                     colFrictionAngle,
	"soilunitweight":          colSoilUnitWeight,
	"soilunitweightunit":      colSoilUnitWeightUnit,
	"width":                   colWidth,
	"depth":                   colDepth,
	"safetyfactor":            colSafetyFactor,
	"gwtdepth":                colGwtDepth,
	"saturatedunitweight":     colSaturated,
	"saturatedunitweightunit": colSaturatedUnit,
	"waterunitweight":         colWater,
	"waterunitweightunit":     colWaterUnit,
}

func init() {
	historyColumns := map[string]column{
		"Description":                  colDescription,
		"Foundation Type":              colShape,
		"Failure Type":                 colFailureMode,
		"Cohesion (c)":                 colCohesion,
		"Friction Angle (φ)":           colFrictionAngle,
		"Soil Unit Weight (γ)":         colSoilUnitWeight,
		"Width/Diameter (B)":           colWidth,
		"Depth (Df)":                   colDepth,
		"Safety Factor (SF)":           colSafetyFactor,
		"Water Table Depth (Dw)":       colGwtDepth,
		"Saturated Unit Weight (γsat)": colSaturated,
		"Water Unit Weight (γw)":       colWater,
	}
	for _, h := range history.Headers {
		if c, ok := historyColumns[h]; ok {
			headerAliases[normalise(h)] = c
		}
	}
}

func normalise(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if r == ' ' || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Row is one parsed worksheet row. Err is set when a cell could not be read
// as a number; Input is then incomplete.
type Row struct {
	Row         int
	Description string
	Input       bearing.Input
	Err         *bearing.ValidationError
}

// ReadWorkbook parses the Calculations sheet when present, otherwise the
// first sheet. The first row is the header.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if idx, err := f.GetSheetIndex(history.SheetName); err == nil && idx >= 0 {
		sheet = history.SheetName
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	cols := map[column]int{}
	for i, h := range rows[0] {
		if c, ok := headerAliases[normalise(h)]; ok {
			if _, seen := cols[c]; !seen {
				cols[c] = i
			}
		}
	}

	out := make([]Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, parseRow(i+1, rows[i], cols))
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber reads a text cell. A lone comma is a decimal separator
// ("0,2"); commas before a dot group thousands ("1,250.5"). A comma after
// the last dot has no single reading and is rejected.
func parseNumber(s string) (float64, error) {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma < 0:
	case dot < 0 && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case dot < 0 || comma > dot:
		return 0, fmt.Errorf("ambiguous separators in %q", s)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	return strconv.ParseFloat(s, 64)
}

func parseRow(n int, cells []string, cols map[column]int) Row {
	row := Row{Row: n}
	text := func(c column) string {
		i, ok := cols[c]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	num := func(c column, field string) *float64 {
		s := text(c)
		if s == "" || row.Err != nil {
			return nil
		}
		v, err := parseNumber(s)
		if err != nil {
			row.Err = &bearing.ValidationError{Field: field, Message: fmt.Sprintf("not a number: %q", s)}
			return nil
		}
		return &v
	}

	in := bearing.Input{
		Shape:               bearing.Shape(strings.ToLower(text(colShape))),
		FailureMode:         bearing.FailureMode(strings.ToLower(text(colFailureMode))),
		Cohesion:            num(colCohesion, "cohesion"),
		CohesionUnit:        text(colCohesionUnit),
		FrictionAngle:       num(colFrictionAngle, "frictionAngle"),
		SoilUnitWeight:      num(colSoilUnitWeight, "soilUnitWeight"),
		SoilUnitWeightUnit:  text(colSoilUnitWeightUnit),
		WidthM:              num(colWidth, "width"),
		DepthM:              num(colDepth, "depth"),
		SafetyFactor:        num(colSafetyFactor, "safetyFactor"),
		WaterTableDepthM:    num(colGwtDepth, "gwtDepth"),
		SaturatedUnitWeight: num(colSaturated, "saturatedUnitWeight"),
		SaturatedUnit:       text(colSaturatedUnit),
		WaterUnitWeight:     num(colWater, "waterUnitWeight"),
		WaterUnit:           text(colWaterUnit),
	}
	// History rows store an absent water table as zeros.
	if isZero(in.WaterTableDepthM) && isZero(in.SaturatedUnitWeight) && isZero(in.WaterUnitWeight) {
		in.WaterTableDepthM, in.SaturatedUnitWeight, in.WaterUnitWeight = nil, nil, nil
	}
	row.Input = in
	row.Description = text(colDescription)
	return row
}

func isZero(v *float64) bool {
	return v == nil || *v == 0
}
