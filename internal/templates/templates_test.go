package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/lattice"
)

func TestRegistryList(t *testing.T) {
	names := NewRegistry().List()
	if len(names) != 2 || names[0] != "hbar_4t" || names[1] != "strip_2t" {
		t.Errorf("List() = %v", names)
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().Get("hbar_6t")
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "strip_2t") {
		t.Errorf("error should list available templates: %v", err)
	}
}

func TestBuildStrip(t *testing.T) {
	sys, err := NewRegistry().Build("strip_2t", Geometry{LxLeg: 6, LyLeg: 3}, lattice.DefaultParams(), kpm.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if sys.NumSites() != 18 {
		t.Errorf("sites = %d, want 18", sys.NumSites())
	}
	if sys.Area() != 18 {
		t.Errorf("area = %g, want 18", sys.Area())
	}
	if sys.LeadCount() != 2 {
		t.Errorf("leads = %d, want 2", sys.LeadCount())
	}
}

func TestBuildHbar(t *testing.T) {
	g := Geometry{LxLeg: 12, LyLeg: 2, LxNeck: 2, LyNeck: 2}
	sys, err := NewRegistry().Build("hbar_4t", g, lattice.DefaultParams(), kpm.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := 2*12*2 + 2*2
	if sys.NumSites() != want {
		t.Errorf("sites = %d, want %d", sys.NumSites(), want)
	}
	if sys.Area() != float64(want) {
		t.Errorf("area = %g, want %d", sys.Area(), want)
	}

	leads := sys.Leads()
	if len(leads) != 4 {
		t.Fatalf("leads = %d, want 4", len(leads))
	}
	order := []string{"BL", "TL", "BR", "TR"}
	for i, l := range leads {
		if l.Name != order[i] {
			t.Errorf("lead %d = %s, want %s", i, l.Name, order[i])
		}
	}
}

func TestHbarShape(t *testing.T) {
	shape := HbarShape(Geometry{LxLeg: 6, LyLeg: 1, LxNeck: 2, LyNeck: 1})

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{5, 2, true},
		{0, 1, false},
		{2, 1, true},
		{3, 1, true},
		{4, 1, false},
		{6, 0, false},
	}
	for _, tt := range tests {
		if got := shape(tt.x, tt.y); got != tt.want {
			t.Errorf("shape(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestInvalidGeometry(t *testing.T) {
	r := NewRegistry()
	_, err := r.Build("hbar_4t", Geometry{LxLeg: 4, LyLeg: 1, LxNeck: 6, LyNeck: 1}, lattice.DefaultParams(), kpm.DefaultConfig())
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	_, err = r.Build("strip_2t", Geometry{}, lattice.DefaultParams(), kpm.DefaultConfig())
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestScaled(t *testing.T) {
	g := Scaled(30)
	if g != (Geometry{LxLeg: 30, LyLeg: 5, LxNeck: 5, LyNeck: 5}) {
		t.Errorf("Scaled(30) = %+v", g)
	}
	if Scaled(4).LyLeg != 1 {
		t.Errorf("Scaled(4) legs should be clamped to 1")
	}
}
