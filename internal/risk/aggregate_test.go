package risk

import (
	"testing"

	"medipred/internal/model"
)

func TestToPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.05, 5.0},
		{0.95, 95.0},
		{0.21022727, 21.0},
		{0.4049, 40.5},
		{0.30556, 30.6},
	}
	for _, tt := range tests {
		if got := toPercent(tt.in); got != tt.want {
			t.Errorf("toPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestElevatedUsesReportedPercent(t *testing.T) {
	if elevated(40.0, 0.4) {
		t.Error("40.0 should not exceed a 0.4 threshold")
	}
	if !elevated(40.1, 0.4) {
		t.Error("40.1 should exceed a 0.4 threshold")
	}
}

func TestLadders(t *testing.T) {
	rungs := []rung{{10, 3}, {5, 2}, {1, 1}}
	if got := exceeds(10, rungs...); got != 2 {
		t.Errorf("exceeds(10) = %v, want 2", got)
	}
	if got := reaches(10, rungs...); got != 3 {
		t.Errorf("reaches(10) = %v, want 3", got)
	}
	if got := reaches(0.5, rungs...); got != 0 {
		t.Errorf("reaches(0.5) = %v, want 0", got)
	}
}

func TestRankByContributionIsStable(t *testing.T) {
	cs := []contribution{
		{name: "a", score: 0.1, max: 0.2},
		{name: "b", score: 0.2, max: 0.2},
		{name: "c", score: 0.1, max: 0.1},
		{name: "d", score: 0.2, max: 0.4},
	}
	got := rankByContribution(cs, 3)
	want := []struct {
		name   string
		impact model.ImpactTier
	}{
		{"b", model.ImpactHigh},
		{"d", model.ImpactMedium},
		{"a", model.ImpactMedium},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Impact != w.impact {
			t.Errorf("[%d] = %s/%s, want %s/%s", i, got[i].Name, got[i].Impact, w.name, w.impact)
		}
	}
	if cs[0].name != "a" {
		t.Error("input slice was reordered")
	}
}

func TestRankByWeightIsStable(t *testing.T) {
	in := []model.RiskFactor{
		{Name: "Depression Score", Weight: 4},
		{Name: "Anxiety Score", Weight: 7},
		{Name: "Stress Score", Weight: 4},
	}
	got := rankByWeight(in)
	want := []string{"Anxiety Score", "Depression Score", "Stress Score"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("[%d] = %s, want %s", i, got[i].Name, name)
		}
	}
	if in[0].Name != "Depression Score" {
		t.Error("input slice was reordered")
	}
}

func TestSpaceCamel(t *testing.T) {
	if got := spaceCamel("leftVentricularHypertrophy"); got != "left Ventricular Hypertrophy" {
		t.Errorf("spaceCamel() = %q", got)
	}
}
