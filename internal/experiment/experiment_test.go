package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/templates"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Template = "strip_2t"
	cfg.Geometry = templates.Geometry{LxLeg: 6, LyLeg: 3}
	cfg.Energies = config.EnergyConfig{Min: 1, Max: 2, Num: 6}
	return cfg
}

func TestRunBeforeSetup(t *testing.T) {
	exp := New(smallConfig(), templates.NewRegistry(), nil)
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
	if exp.Device() != nil {
		t.Error("device should be nil before setup")
	}
}

func TestSetupUnknownTemplate(t *testing.T) {
	cfg := smallConfig()
	cfg.Template = "ring"
	if err := New(cfg, templates.NewRegistry(), nil).Setup(); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRunBothModes(t *testing.T) {
	for _, mode := range []string{config.ModeDirect, config.ModeKPM} {
		cfg := smallConfig()
		cfg.Mode = mode

		exp := New(cfg, templates.NewRegistry(), nil)
		if err := exp.Setup(); err != nil {
			t.Fatalf("%s: setup: %v", mode, err)
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			t.Fatalf("%s: run: %v", mode, err)
		}
		if len(res.IDOS.IDOS) != len(res.IDOS.Energies) {
			t.Errorf("%s: idos/energies length mismatch", mode)
		}
		if res.Sites != 18 {
			t.Errorf("%s: expected 18 sites, got %d", mode, res.Sites)
		}

		meta := exp.Metadata(res)
		if meta.Template != "strip_2t" || meta.Mode != mode {
			t.Errorf("%s: unexpected metadata %+v", mode, meta)
		}
		if mode == config.ModeKPM && meta.Moments == 0 {
			t.Errorf("kpm metadata should record moments")
		}
	}
}

func TestDOSAndKPM(t *testing.T) {
	exp := New(smallConfig(), templates.NewRegistry(), nil)
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}

	dos, err := exp.DOS(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dos) != 6 {
		t.Errorf("expected 6 samples, got %d", len(dos))
	}
	for i, d := range dos {
		if d < 0 {
			t.Errorf("sample %d negative: %g", i, d)
		}
	}

	k, err := exp.KPM()
	if err != nil {
		t.Fatal(err)
	}
	if len(k.DOS) != len(k.Energies) || len(k.DOS) == 0 {
		t.Errorf("unexpected kpm result lengths %d/%d", len(k.DOS), len(k.Energies))
	}
}
