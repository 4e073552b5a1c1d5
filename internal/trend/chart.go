package trend

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// denseThreshold is the date-count boundary above which tick labels are
// thinned rather than drawn individually (§4.9: "sparser than ~30 ...
// denser ranges use auto-thinning").
const denseThreshold = 30

var (
	colorHigh   = color.RGBA{R: 0xd6, G: 0x2e, B: 0x2e, A: 0xff}
	colorMedium = color.RGBA{R: 0xe0, G: 0xb0, B: 0x20, A: 0xff}
	colorLow    = color.RGBA{R: 0x2e, G: 0xa0, B: 0x4a, A: 0xff}
	colorSingle = color.RGBA{R: 0x1f, G: 0x5f, B: 0xd6, A: 0xff}

	statusPalette = []color.Color{
		color.RGBA{R: 0x2e, G: 0xa0, B: 0x4a, A: 0xff},
		color.RGBA{R: 0xd6, G: 0x2e, B: 0x2e, A: 0xff},
		color.RGBA{R: 0x1f, G: 0x5f, B: 0xd6, A: 0xff},
		color.RGBA{R: 0xe0, G: 0xb0, B: 0x20, A: 0xff},
		color.RGBA{R: 0x9d, G: 0x2e, B: 0xd6, A: 0xff},
		color.RGBA{R: 0x2e, G: 0xc6, B: 0xc6, A: 0xff},
		color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
	}
	// statusTopN bounds how many distinct statuses get their own series,
	// matching the original's "small palette cycled over the top-N statuses".
	statusTopN = len(statusPalette)
)

// Chart renders agg as a PNG under dir, named "<kind>_<chartKind>_<timestamp>.png",
// and returns the file path and its file:// URL.
func Chart(agg *Aggregate, chartKind ChartKind, dir, timestamp, title string) (path string, url string, err error) {
	dates := agg.SortedDates()
	if len(dates) == 0 {
		return "", "", fmt.Errorf("trend: no dated records to chart")
	}

	p := plot.New()
	p.Title.Text = chartTitleOrDefault(title, agg, chartKind)
	p.X.Label.Text = "date"
	p.Y.Label.Text = "count"

	switch chartKind {
	case ChartPriority:
		if err := addPrioritySeries(p, agg, dates); err != nil {
			return "", "", err
		}
	case ChartStatus:
		if err := addStatusSeries(p, agg, dates); err != nil {
			return "", "", err
		}
	default:
		if err := addCountSeries(p, agg, dates); err != nil {
			return "", "", err
		}
	}

	p.NominalX(thinnedLabels(dates)...)

	filename := fmt.Sprintf("%s_%s_%s.png", agg.Kind, chartKind, timestamp)
	path = filepath.Join(dir, filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create chart directory: %w", err)
	}
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", "", fmt.Errorf("save chart: %w", err)
	}

	return path, "file://" + path, nil
}

func chartTitleOrDefault(title string, agg *Aggregate, chartKind ChartKind) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("%s %s trend (by %s)", agg.Kind, chartKind, agg.TimeField)
}

func addCountSeries(p *plot.Plot, agg *Aggregate, dates []string) error {
	pts := make(plotter.XYs, len(dates))
	for i, d := range dates {
		pts[i].X = float64(i)
		pts[i].Y = float64(agg.Days[d].TotalCount)
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build count series: %w", err)
	}
	line.Color = colorSingle
	points.Color = colorSingle
	p.Add(line, points)
	p.Legend.Add("total", line, points)
	return nil
}

func addPrioritySeries(p *plot.Plot, agg *Aggregate, dates []string) error {
	series := []struct {
		label string
		color color.Color
		pick  func(*DayStats) int
	}{
		{"high", colorHigh, func(d *DayStats) int { return d.HighPriorityCount }},
		{"medium", colorMedium, func(d *DayStats) int { return d.MediumPriorityCount }},
		{"low", colorLow, func(d *DayStats) int { return d.LowPriorityCount }},
	}

	for _, s := range series {
		pts := make(plotter.XYs, len(dates))
		for i, d := range dates {
			pts[i].X = float64(i)
			pts[i].Y = float64(s.pick(agg.Days[d]))
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("build %s priority series: %w", s.label, err)
		}
		line.Color = s.color
		points.Color = s.color
		p.Add(line, points)
		p.Legend.Add(s.label, line, points)
	}
	return nil
}

func addStatusSeries(p *plot.Plot, agg *Aggregate, dates []string) error {
	totals := map[string]int{}
	for _, d := range dates {
		for status, c := range agg.Days[d].StatusCounts {
			totals[status] += c
		}
	}
	statuses := topStatuses(totals, statusTopN)

	for i, status := range statuses {
		pts := make(plotter.XYs, len(dates))
		for j, d := range dates {
			pts[j].X = float64(j)
			pts[j].Y = float64(agg.Days[d].StatusCounts[status])
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("build %s status series: %w", status, err)
		}
		c := statusPalette[i%len(statusPalette)]
		line.Color = c
		points.Color = c
		p.Add(line, points)
		p.Legend.Add(status, line, points)
	}
	return nil
}

func topStatuses(totals map[string]int, n int) []string {
	type kv struct {
		status string
		count  int
	}
	kvs := make([]kv, 0, len(totals))
	for s, c := range totals {
		kvs = append(kvs, kv{s, c})
	}
	for i := 1; i < len(kvs); i++ {
		for j := i; j > 0 && (kvs[j-1].count < kvs[j].count || (kvs[j-1].count == kvs[j].count && kvs[j-1].status > kvs[j].status)); j-- {
			kvs[j-1], kvs[j] = kvs[j], kvs[j-1]
		}
	}
	if len(kvs) > n {
		kvs = kvs[:n]
	}
	out := make([]string, len(kvs))
	for i, k := range kvs {
		out[i] = k.status
	}
	return out
}

// thinnedLabels labels every date when there are few enough to read, or
// every Nth date once the range grows dense.
func thinnedLabels(dates []string) []string {
	if len(dates) <= denseThreshold {
		return dates
	}
	step := len(dates)/denseThreshold + 1
	out := make([]string, len(dates))
	for i, d := range dates {
		if i%step == 0 {
			out[i] = d
		} else {
			out[i] = ""
		}
	}
	return out
}
