package bench

import (
	"context"
	"testing"
	"time"

	"github.com/san-kum/spectra/internal/templates"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Energies) != 40 {
		t.Errorf("expected 40 energies, got %d", len(cfg.Energies))
	}
	if cfg.Energies[0] != 0.1 || cfg.Energies[39] != 0.49 {
		t.Errorf("unexpected energy bounds %g..%g", cfg.Energies[0], cfg.Energies[39])
	}
	if !cfg.UseApprox {
		t.Error("default benchmark should use the KPM path")
	}
	if cfg.Sizes[0] != cfg.Sizes[1] {
		t.Error("first size should repeat as warm-up")
	}
}

func TestRunSmall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Template = "strip_2t"
	cfg.Sizes = []int{6, 6, 12}
	cfg.Energies = []float64{0.5, 1, 1.5}

	results, err := Run(context.Background(), cfg, templates.NewRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Warmup || results[1].Warmup {
		t.Error("only the first result should be a warm-up")
	}
	if results[2].Sites != 12*2 {
		t.Errorf("expected 24 sites, got %d", results[2].Sites)
	}
	for _, r := range results {
		if r.Elapsed <= 0 {
			t.Errorf("size %d: elapsed not recorded", r.Size)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, DefaultConfig(), templates.NewRegistry(), nil); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestScalingExponent(t *testing.T) {
	results := []Result{
		{Sites: 10, Elapsed: time.Hour, Warmup: true},
		{Sites: 100, Elapsed: 10 * time.Millisecond},
		{Sites: 200, Elapsed: 80 * time.Millisecond},
		{Sites: 400, Elapsed: 640 * time.Millisecond},
	}
	k, err := ScalingExponent(results)
	if err != nil {
		t.Fatal(err)
	}
	if k < 2.99 || k > 3.01 {
		t.Errorf("expected cubic scaling, got %g", k)
	}

	if _, err := ScalingExponent(results[:2]); err == nil {
		t.Error("expected error with a single measured size")
	}
}
