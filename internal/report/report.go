// Package report renders the subject-length chart from the aggregated
// stats table.
package report

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/subjscan/subjscan/internal/store"
)

// Options filters the aggregate before charting. These mirror the sanity
// cuts the analysis side has always applied; the stored data is untouched.
type Options struct {
	From     string // inclusive lower date bound, "" for none
	To       string // inclusive upper date bound, "" for none
	MaxCount int64  // drop days with more rows than this, 0 for no cap
}

// Filter applies the date window and per-day volume cap.
func Filter(aggs []store.DailyAggregate, opts Options) []store.DailyAggregate {
	out := make([]store.DailyAggregate, 0, len(aggs))
	for _, a := range aggs {
		if opts.From != "" && a.Date < opts.From {
			continue
		}
		if opts.To != "" && a.Date > opts.To {
			continue
		}
		if opts.MaxCount > 0 && a.Count > opts.MaxCount {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Render draws per-day average subject length as a scatter with a
// least-squares trend line, plus a scaled per-day volume series, and
// saves the chart to output (format chosen by extension, normally .png).
func Render(aggs []store.DailyAggregate, output string) error {
	if len(aggs) == 0 {
		return fmt.Errorf("render: no data to plot")
	}

	xs := make([]float64, len(aggs))
	ys := make([]float64, len(aggs))
	var maxLen, maxCount float64
	for i, a := range aggs {
		t, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			return fmt.Errorf("render: bad date %q in table: %w", a.Date, err)
		}
		xs[i] = float64(t.Unix())
		ys[i] = a.AvgSubjectLength
		if a.AvgSubjectLength > maxLen {
			maxLen = a.AvgSubjectLength
		}
		if float64(a.Count) > maxCount {
			maxCount = float64(a.Count)
		}
	}

	p := plot.New()
	p.Title.Text = "Subject line length over time"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Length of subject line (chars)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	lengths := make(plotter.XYs, len(aggs))
	for i := range aggs {
		lengths[i].X = xs[i]
		lengths[i].Y = ys[i]
	}
	scatter, err := plotter.NewScatter(lengths)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1)
	scatter.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(scatter)
	p.Legend.Add("avg subject length", scatter)

	// Daily volume shares the axis, scaled to the length range; there is
	// no twin-axis support, so the legend carries the caveat.
	if maxCount > 0 {
		scale := 1.0
		if maxLen > 0 {
			scale = maxLen / maxCount
		}
		counts := make(plotter.XYs, len(aggs))
		for i, a := range aggs {
			counts[i].X = xs[i]
			counts[i].Y = float64(a.Count) * scale
		}
		volume, err := plotter.NewLine(counts)
		if err != nil {
			return fmt.Errorf("render: volume line: %w", err)
		}
		volume.LineStyle.Color = color.Gray{Y: 0x99}
		p.Add(volume)
		p.Legend.Add("messages/day (scaled)", volume)
	}

	if len(aggs) >= 2 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		trend := plotter.XYs{
			{X: xs[0], Y: alpha + beta*xs[0]},
			{X: xs[len(xs)-1], Y: alpha + beta*xs[len(xs)-1]},
		}
		line, err := plotter.NewLine(trend)
		if err != nil {
			return fmt.Errorf("render: trend line: %w", err)
		}
		line.LineStyle.Color = color.RGBA{R: 255, A: 255}
		p.Add(line)
		p.Legend.Add("trend", line)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, output); err != nil {
		return fmt.Errorf("render: save %q: %w", output, err)
	}
	return nil
}
