package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := run(t, "calc", "--cohesion", "0.2", "--phi", "30", "--gamma", "0.0018",
		"--width", "1.5", "--depth", "1.5", "--sf", "3")
	if err != nil {
		t.Fatalf("calc: %v\n%s", err, out)
	}
	for _, want := range []string{"qult", "qall", "kg/cm²", "37.16", "qult = (c × Nc)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcCommandMissingField(t *testing.T) {
	_, err := run(t, "calc", "--phi", "30", "--gamma", "0.0018", "--width", "1.5", "--depth", "1.5", "--sf", "3")
	if err == nil || !strings.Contains(err.Error(), "cohesion") {
		t.Fatalf("expected cohesion error, got %v", err)
	}
}

func TestCalcCommandJSON(t *testing.T) {
	out, err := run(t, "calc", "--json", "--shape", "square", "--mode", "local",
		"--cohesion", "0.3", "--friction-angle", "20", "--gamma", "0.0017",
		"--width", "2", "--depth", "1", "--sf", "3")
	if err != nil {
		t.Fatalf("calc: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"qult"`) || !strings.Contains(out, `"formula"`) {
		t.Fatalf("not JSON output:\n%s", out)
	}
}

func TestFactorsCommand(t *testing.T) {
	out, err := run(t, "factors", "--phi", "30")
	if err != nil {
		t.Fatalf("factors: %v", err)
	}
	if !strings.Contains(out, "37.16") || !strings.Contains(out, "22.46") {
		t.Fatalf("unexpected factors:\n%s", out)
	}
	if _, err := run(t, "factors", "--mode", "partial"); err == nil {
		t.Fatalf("expected bad mode error")
	}
	out, _ = run(t, "factors", "--all", "--mode", "local")
	if lines := strings.Count(out, "\n"); lines != 52 {
		t.Fatalf("--all printed %d lines, want 52", lines)
	}
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	doc := `cases:
  - name: strip-dry
    shape: strip
    failure_mode: general
    cohesion: 0.2
    friction_angle: 30
    soil_unit_weight: 0.0018
    width_m: 1.5
    depth_m: 1.5
    safety_factor: 3
  - name: broken
    shape: strip
    failure_mode: general
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "batch", path)
	if err != nil {
		t.Fatalf("batch: %v\n%s", err, out)
	}
	if !strings.Contains(out, "strip-dry") || !strings.Contains(out, "1 succeeded, 1 failed") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := run(t, "batch", "--strict", path); err == nil {
		t.Fatalf("--strict should fail on a bad case")
	}
}
