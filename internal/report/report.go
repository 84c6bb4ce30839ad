// Package report renders engine results, sweeps, benchmarks and stored
// runs for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/san-kum/spectra/internal/bench"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/storage"
	"github.com/san-kum/spectra/internal/sweep"
)

const sparkWidth = 60

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// rows picks at most limit evenly spaced indices out of n, always keeping
// the last one. limit <= 0 keeps everything.
func rows(n, limit int) []int {
	if limit <= 0 || n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if limit == 1 {
		return []int{n - 1}
	}
	idx := make([]int, limit)
	for i := range idx {
		idx[i] = i * (n - 1) / (limit - 1)
	}
	return idx
}

// WriteDOS prints a direct-engine DOS curve.
func WriteDOS(w io.Writer, energies, dos []float64, maxRows int) error {
	fmt.Fprintln(w, HeaderStyle.Render("Density of states"))
	fmt.Fprintln(w, Sparkline(dos, sparkWidth))

	tw := newTable(w)
	fmt.Fprintln(tw, "ENERGY\tDOS")
	for _, i := range rows(len(energies), maxRows) {
		fmt.Fprintf(tw, "%s\t%s\n", num(energies[i]), num(dos[i]))
	}
	return tw.Flush()
}

// WriteKPM prints a summary of a moment-expansion result followed by its
// DOS on the native grid.
func WriteKPM(w io.Writer, res *spectral.KPMResult, maxRows int) error {
	fmt.Fprintln(w, HeaderStyle.Render("KPM density of states"))
	fmt.Fprintln(w, Metric("moments", strconv.Itoa(res.Moments)), " ",
		Metric("resolution", num(res.Resolution)), " ",
		Metric("points", strconv.Itoa(len(res.Energies))))
	if res.Degraded {
		fmt.Fprintln(w, Warning.Render("requested resolution not reached"))
	}
	if len(res.Energies) == 0 {
		return nil
	}
	return WriteDOS(w, res.Energies, res.DOS, maxRows)
}

// WriteIDOS prints an IDOS curve. The DOS column is included when the
// result carries it.
func WriteIDOS(w io.Writer, res *spectral.IDOSResult, maxRows int) error {
	fmt.Fprintln(w, HeaderStyle.Render("Integrated density of states"))
	if res.Moments > 0 {
		fmt.Fprintln(w, Metric("mode", "kpm"), " ", Metric("moments", strconv.Itoa(res.Moments)))
	} else {
		fmt.Fprintln(w, Metric("mode", "direct"))
	}
	if res.Degraded {
		fmt.Fprintln(w, Warning.Render("requested resolution not reached"))
	}
	fmt.Fprintln(w, Sparkline(res.IDOS, sparkWidth))

	withDOS := len(res.DOS) == len(res.Energies)
	tw := newTable(w)
	if withDOS {
		fmt.Fprintln(tw, "ENERGY\tIDOS\tDOS")
	} else {
		fmt.Fprintln(tw, "ENERGY\tIDOS")
	}
	for _, i := range rows(len(res.Energies), maxRows) {
		if withDOS {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", num(res.Energies[i]), num(res.IDOS[i]), num(res.DOS[i]))
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", num(res.Energies[i]), num(res.IDOS[i]))
		}
	}
	return tw.Flush()
}

// WriteSweep prints one row per sweep point. Failed points show their
// error in place of the energy.
func WriteSweep(w io.Writer, param string, points []sweep.Point) error {
	fmt.Fprintln(w, HeaderStyle.Render("Sweep over "+param))
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tENERGY\tMAX IDOS\tNOTE\n", param)
	for _, p := range points {
		note := ""
		if p.Degraded {
			note = "degraded"
		}
		if p.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t%s\t%s\n", num(p.ParamValue), num(p.MaxIDOS), p.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", num(p.ParamValue), num(p.Energy), num(p.MaxIDOS), note)
	}
	return tw.Flush()
}

// WriteDisorder prints the per-seed points of a disorder average and its
// statistics.
func WriteDisorder(w io.Writer, avg *sweep.DisorderAverage) error {
	if err := WriteSweep(w, "seed", avg.Points); err != nil {
		return err
	}
	fmt.Fprintln(w, Metric("mean", num(avg.Mean)), " ", Metric("std", num(avg.StdDev)))
	if avg.Failed > 0 {
		fmt.Fprintln(w, Failure.Render(fmt.Sprintf("%d of %d trials failed", avg.Failed, len(avg.Points))))
	}
	return nil
}

// WriteBench prints scaling measurements. A scaling exponent is shown when
// one could be fitted.
func WriteBench(w io.Writer, results []bench.Result) error {
	fmt.Fprintln(w, HeaderStyle.Render("Scaling benchmark"))
	tw := newTable(w)
	fmt.Fprintln(tw, "SIZE\tSITES\tELAPSED\tALLOC (MB)\t")
	for _, r := range results {
		warm := ""
		if r.Warmup {
			warm = "warm-up"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\t%s\n",
			r.Size, r.Sites, r.Elapsed.Round(time.Millisecond), float64(r.Allocated)/(1<<20), warm)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if k, err := bench.ScalingExponent(results); err == nil {
		fmt.Fprintln(w, Metric("elapsed ~ sites^k, k", fmt.Sprintf("%.2f", k)))
	} else {
		fmt.Fprintln(w, Subtle.Render("scaling exponent unavailable: "+err.Error()))
	}
	return nil
}

// WriteRuns lists stored runs.
func WriteRuns(w io.Writer, runs []storage.RunMetadata) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, Subtle.Render("no runs found"))
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTEMPLATE\tMODE\tSITES\tSAMPLES\tTIME")
	for _, r := range runs {
		mode := r.Mode
		if r.Degraded {
			mode += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Template, mode, r.Sites, r.Samples, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
