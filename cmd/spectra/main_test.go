package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/templates"
)

func testShell(t *testing.T) *lookupShell {
	t.Helper()
	res := &spectral.IDOSResult{
		Energies: []float64{0, 1, 2, 3},
		IDOS:     []float64{0, 1, 2, 3},
	}
	sh, err := newLookupShell("strip_2t_0000beef", res)
	require.NoError(t, err)
	return sh
}

func TestShellLookups(t *testing.T) {
	sh := testShell(t)

	var buf bytes.Buffer
	assert.False(t, sh.eval(&buf, "e 1.5"))
	assert.Equal(t, "density = 2\n", buf.String())

	buf.Reset()
	sh.eval(&buf, "n 2.5")
	assert.Equal(t, "energy = 3\n", buf.String())

	buf.Reset()
	sh.eval(&buf, "n 10")
	assert.Contains(t, buf.String(), "need more eigenstates")

	buf.Reset()
	sh.eval(&buf, "range")
	assert.Contains(t, buf.String(), "4 samples")
}

func TestShellInput(t *testing.T) {
	sh := testShell(t)

	var buf bytes.Buffer
	assert.False(t, sh.eval(&buf, "   "))
	assert.Empty(t, buf.String())

	sh.eval(&buf, "e abc")
	assert.Contains(t, buf.String(), "Invalid number")

	buf.Reset()
	sh.eval(&buf, "e")
	assert.Contains(t, buf.String(), "Usage")

	buf.Reset()
	sh.eval(&buf, "plot")
	assert.Contains(t, buf.String(), "Unknown command")

	assert.True(t, sh.eval(&buf, "quit"))
}

func TestShellRejectsDecreasingIDOS(t *testing.T) {
	_, err := newLookupShell("x", &spectral.IDOSResult{
		Energies: []float64{0, 1, 2},
		IDOS:     []float64{0, 2, 1},
	})
	assert.ErrorIs(t, err, spectral.ErrUnsorted)
}

func newDeviceCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	addDeviceFlags(cmd)
	cmd.Flags().BoolVar(&approx, "approx", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newDeviceCmd(t))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestResolveConfigFlags(t *testing.T) {
	cmd := newDeviceCmd(t, "--template", "strip_2t", "--size", "12", "--mu", "0.3", "--approx", "--num", "7")
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "strip_2t", cfg.Template)
	assert.Equal(t, templates.Scaled(12), cfg.Geometry)
	assert.Equal(t, 0.3, cfg.Hamiltonian.Mu)
	assert.Equal(t, config.ModeKPM, cfg.Mode)
	assert.Equal(t, 7, cfg.Energies.Num)
}

func TestResolveConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("template: strip_2t\nhamiltonian:\n  t: 2\n  mu: 0.1\n"), 0644))

	cmd := newDeviceCmd(t, "--mu", "0.4")
	configFile = path
	defer func() { configFile = "" }()

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "strip_2t", cfg.Template)
	assert.Equal(t, 2.0, cfg.Hamiltonian.T)
	assert.Equal(t, 0.4, cfg.Hamiltonian.Mu)
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := newDeviceCmd(t, "--template", "strip_2t")
	preset = "disordered"
	defer func() { preset = "" }()

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Greater(t, cfg.Hamiltonian.Disorder, 0.0)

	preset = "nope"
	_, err = resolveConfig(cmd)
	assert.ErrorContains(t, err, "unknown preset")
}

func TestResolveConfigPresetThenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hamiltonian:\n  mu: 0.2\n"), 0644))

	cmd := newDeviceCmd(t, "--template", "strip_2t", "--seed", "9")
	preset, configFile = "disordered", path
	defer func() { preset, configFile = "", "" }()

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Hamiltonian.Disorder)
	assert.Equal(t, 0.2, cfg.Hamiltonian.Mu)
	assert.Equal(t, int64(9), cfg.Hamiltonian.Seed)
	assert.Equal(t, 80, cfg.Energies.Num)
}

func TestResolveConfigInvalid(t *testing.T) {
	_, err := resolveConfig(newDeviceCmd(t, "--mode", "fast"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
