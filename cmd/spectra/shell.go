package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/san-kum/spectra/internal/spectral"
)

// lookupShell answers energy and density queries against one IDOS table.
type lookupShell struct {
	runID     string
	byEnergy  *spectral.Table
	byDensity *spectral.Table
}

func newLookupShell(runID string, res *spectral.IDOSResult) (*lookupShell, error) {
	byEnergy, err := spectral.EnergyTable(res)
	if err != nil {
		return nil, err
	}
	byDensity, err := byEnergy.Invert()
	if err != nil {
		return nil, fmt.Errorf("idos is not monotonic: %w", err)
	}
	return &lookupShell{runID: runID, byEnergy: byEnergy, byDensity: byDensity}, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	res, err := loadResult(args[0])
	if err != nil {
		return err
	}
	sh, err := newLookupShell(args[0], res)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          args[0] + "> ",
		HistoryFile:     filepath.Join(dataDir, ".shell_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh.help(rl.Stdout())
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		if sh.eval(rl.Stdout(), line) {
			return nil
		}
	}
}

// eval runs one command line and reports whether the shell should exit.
func (s *lookupShell) eval(w io.Writer, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch strings.ToLower(parts[0]) {
	case "help", "?":
		s.help(w)
	case "energy", "e":
		s.lookup(w, s.byEnergy, parts[1:], "density")
	case "density", "n":
		s.lookup(w, s.byDensity, parts[1:], "energy")
	case "range", "r":
		elo, ehi := s.byEnergy.Bounds()
		nlo, nhi := s.byDensity.Bounds()
		fmt.Fprintf(w, "energy  [%g, %g]\ndensity [%g, %g]\n%d samples\n", elo, ehi, nlo, nhi, s.byEnergy.Len())
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", parts[0])
	}
	return false
}

func (s *lookupShell) lookup(w io.Writer, t *spectral.Table, args []string, what string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: e <energy> | n <density>")
		return
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(w, "Invalid number: %s\n", args[0])
		return
	}
	y, err := t.Lookup(x)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s = %.8g\n", what, y)
}

func (s *lookupShell) help(w io.Writer) {
	fmt.Fprintf(w, `Run %s
  e <energy>    integrated density at an energy
  n <density>   energy at an integrated density
  range         table bounds
  quit          leave the shell
`, s.runID)
}
