// Package viz renders run results in the terminal: ascii time-series
// plots, a styled summary panel, and a live day-by-day view.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/engine"
	"github.com/san-kum/phycosim/internal/kinetics"
)

// PlotSeries renders one named series from a result. Valid names are
// biomass, growth, productivity, co2.
func PlotSeries(res *engine.Result, name string) (string, error) {
	var data []float64
	var caption string

	switch name {
	case "biomass":
		data, caption = res.Biomass, "biomass [g/L]"
	case "growth":
		data, caption = res.GrowthRate, "net growth rate [1/day]"
	case "productivity":
		data, caption = res.Productivity, "areal productivity [g/m2/day]"
	case "co2":
		data, caption = res.CO2CumulativeGm2, "cumulative CO2 fixed [g/m2]"
	default:
		return "", fmt.Errorf("unknown series: %s (want biomass, growth, productivity, co2)", name)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("empty series: %s", name)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph), nil
}

// PlotAll renders the standard set of plots for a run.
func PlotAll(res *engine.Result) string {
	var b strings.Builder
	for _, name := range []string{"biomass", "productivity", "co2"} {
		plot, err := PlotSeries(res, name)
		if err != nil {
			continue
		}
		b.WriteString(plot)
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders the run's headline numbers as a bordered panel.
func Summary(species, climateName string, res *engine.Result) string {
	peak, peakDay := res.PeakProductivity()

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s in %s, %d days", species, climateName, res.Days())),
		row("final biomass", fmt.Sprintf("%.3f g/L", res.FinalBiomass())),
		row("harvests", fmt.Sprintf("%d (%.1f kg dry biomass)", res.HarvestCount(), res.HarvestedKg)),
		row("CO2 captured", fmt.Sprintf("%.1f kg", res.CO2TotalKg)),
		row("mean productivity", fmt.Sprintf("%.2f g/m2/day", res.AvgDailyProductivity())),
	}
	if peakDay >= 0 {
		lines = append(lines, row("peak productivity", fmt.Sprintf("%.2f g/m2/day on day %d", peak, peakDay+1)))
	}

	if len(res.SimMetrics) > 0 {
		keys := make([]string, 0, len(res.SimMetrics))
		for k := range res.SimMetrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines = append(lines, "", headerStyle.Render("solver metrics"))
		for _, k := range keys {
			lines = append(lines, row("  "+k, fmt.Sprintf("%.4f", res.SimMetrics[k])))
		}
	}

	if len(res.Seasonal) > 0 {
		lines = append(lines, "", headerStyle.Render("by season"))
		for _, season := range climate.Seasons {
			st, ok := res.Seasonal[season]
			if !ok {
				continue
			}
			lines = append(lines, seasonStyle(string(season)).Render(fmt.Sprintf("  %-8s", season))+
				valueStyle.Render(fmt.Sprintf("%3d days  %6.2f g/m2/day  %7.1f kg CO2",
					st.Days, st.MeanProductivity, st.CO2Kg)))
		}
	}

	for _, w := range res.Warnings {
		lines = append(lines, "", warnStyle.Render("! "+w))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Sparkline compresses a series into a one-line bar chart, used by the
// live view and the list command.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	bars := []rune("▁▂▃▄▅▆▇█")
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	step := len(data) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < len(data); i += step {
		v := data[i]
		idx := 0
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(bars)-1))
		}
		b.WriteRune(bars[idx])
	}
	return b.String()
}

// ProductivityGauge shows a day's productivity against the plausibility
// ceiling.
func ProductivityGauge(p float64, width int) string {
	frac := p / kinetics.ProductivityCeiling
	bar := ProgressBar(frac, width)
	if frac > 1 {
		return warnStyle.Render(bar)
	}
	return valueStyle.Render(bar)
}
