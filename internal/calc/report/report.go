package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

type Input struct {
	Project     string        `json:"project"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Notes       string        `json:"notes"`
	Calculation bearing.Input `json:"calculation"`
}

// The core fonts only cover cp1252, which has ² and ³ but no Greek.
var greek = strings.NewReplacer("γ", "gamma", "φ", "phi", "×", "x")

func val(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func inputRows(in bearing.Input, res bearing.Result) [][3]string {
	rows := [][3]string{
		{"Foundation type", string(in.Shape), ""},
		{"Failure mode", string(in.FailureMode), ""},
		{"Cohesion c", val(in.Cohesion), res.StressLabel},
		{"Friction angle phi", val(in.FrictionAngle), "deg"},
		{"Soil unit weight", val(in.SoilUnitWeight), res.DensityLabel},
		{"Width / diameter B", val(in.WidthM), "m"},
		{"Depth Df", val(in.DepthM), "m"},
		{"Safety factor SF", val(in.SafetyFactor), ""},
	}
	if in.WaterTableDepthM != nil {
		rows = append(rows,
			[3]string{"Water table depth Dw", val(in.WaterTableDepthM), "m"},
			[3]string{"Saturated unit weight", val(in.SaturatedUnitWeight), bearing.UnitLabel(bearing.Density, unitOr(in.SaturatedUnit, "kgcm3"))},
			[3]string{"Water unit weight", val(in.WaterUnitWeight), bearing.UnitLabel(bearing.Density, unitOr(in.WaterUnit, "kgcm3"))},
		)
	}
	return rows
}

func unitOr(u, def string) string {
	if u == "" {
		return def
	}
	return u
}

// Render writes a one-page PDF of the calculation inputs, intermediate
// values and capacities to w.
func Render(w io.Writer, rep Input, res bearing.Result, now time.Time) error {
	if rep.Title == "" {
		rep.Title = "Bearing Capacity Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(greek.Replace(s)) }

	pdf.SetTitle(rep.Title, true)
	pdf.SetAuthor(rep.Author, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(rep.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, text(fmt.Sprintf("Project: %s", rep.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, text(fmt.Sprintf("Author: %s", rep.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value, unit string) {
		pdf.CellFormat(70, 6, text(label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, value, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, text(unit), "1", 1, "L", false, 0, "")
	}

	section("Input")
	for _, r := range inputRows(rep.Calculation, res) {
		row(r[0], r[1], r[2])
	}
	pdf.Ln(4)

	section("Results")
	for _, l := range res.Lines() {
		row(l.Label, l.Value, l.Unit)
	}
	pdf.Ln(4)

	section("Formula")
	pdf.MultiCell(0, 6, text(res.Formula), "", "L", false)

	if rep.Notes != "" {
		pdf.Ln(4)
		section("Notes")
		pdf.MultiCell(0, 6, text(rep.Notes), "", "L", false)
	}
	return pdf.Output(w)
}
