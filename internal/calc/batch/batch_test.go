package batch

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

func stripCase(name string, phi float64) Item {
	return Item{Name: name, Input: bearing.Input{
		Shape:          bearing.Strip,
		FailureMode:    bearing.General,
		Cohesion:       bearing.Float(0.2),
		FrictionAngle:  bearing.Float(phi),
		SoilUnitWeight: bearing.Float(0.0018),
		WidthM:         bearing.Float(1.5),
		DepthM:         bearing.Float(1.5),
		SafetyFactor:   bearing.Float(3),
	}}
}

func TestEvaluateMixed(t *testing.T) {
	res, err := Evaluate(Input{Items: []Item{
		stripCase("ok", 30),
		stripCase("too steep", 55),
		stripCase("ok too", 20),
	}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Succeeded != 2 || res.Failed != 1 {
		t.Fatalf("succeeded=%d failed=%d", res.Succeeded, res.Failed)
	}
	bad := res.Results[1]
	if bad.Status != "invalid" || bad.Field != "frictionAngle" || bad.Result != nil {
		t.Fatalf("bad outcome = %+v", bad)
	}
	if res.Results[0].Result == nil || res.Results[0].Result.Qult <= res.Results[2].Result.Qult {
		t.Fatalf("phi=30 should carry more than phi=20")
	}
}

func TestEvaluateLimits(t *testing.T) {
	if _, err := Evaluate(Input{}); !errors.Is(err, ErrNoItems) {
		t.Fatalf("empty batch: %v", err)
	}
	items := make([]Item, MaxItems+1)
	if _, err := Evaluate(Input{Items: items}); err == nil {
		t.Fatalf("expected too many items error")
	}
}

func TestYAMLCasesInline(t *testing.T) {
	doc := `
cases:
  - name: warehouse
    shape: square
    failure_mode: local
    cohesion: 0.3
    friction_angle: 20
    soil_unit_weight: 0.0017
    width_m: 2
    depth_m: 1
    safety_factor: 3
`
	var in Input
	if err := yaml.Unmarshal([]byte(doc), &in); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(in.Items) != 1 || in.Items[0].Name != "warehouse" {
		t.Fatalf("items = %+v", in.Items)
	}
	got := in.Items[0].Input
	if got.Shape != bearing.Square || got.FailureMode != bearing.Local || *got.WidthM != 2 {
		t.Fatalf("input = %+v", got)
	}
}

func TestHandler(t *testing.T) {
	body := `{"items":[
		{"name":"a","input":{"shape":"strip","failureMode":"general","cohesion":0.2,"frictionAngle":30,"soilUnitWeight":0.0018,"width":1.5,"depth":1.5,"safetyFactor":3}},
		{"name":"b","input":{"shape":"hexagon"}}
	]}`
	rec := httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/api/calc/batch", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Count int    `json:"count"`
		Data  Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Count != 2 || env.Data.Results[1].Field != "shape" {
		t.Fatalf("response = %+v", env)
	}

	rec = httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/api/calc/batch", strings.NewReader(`{"items":[]}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty batch status %d", rec.Code)
	}
}
