package report

import (
	charts "github.com/vicanso/go-charts/v2"

	"github.com/tsdecl/tsconv/internal/transform"
)

// Chart layout constants, the converter's analogue of the teacher's
// radarChartWidth/radarChartHeight/radarChartPad.
const (
	passChartWidth   = 700
	passChartHeight  = 360
	passChartPadTop  = 40
	passChartPadSide = 20
	passChartPadLeft = 60
)

// RenderPassChart builds an SVG bar chart of declaration count per
// pipeline pass, the diagnostic spec.md's --report flag exposes for how
// much each rewrite step grows or shrinks the tree. Grounded on the
// teacher's generateRadarChart/generateTrendChart: same SVGTypeOption +
// ThemeOptionFunc("light") + padded-box scaffolding, a bar series instead
// of a radar/line one. Returns "" when there is nothing to chart.
func RenderPassChart(passCounts []transform.PassCount) (string, error) {
	if len(passCounts) == 0 {
		return "", nil
	}

	names := make([]string, len(passCounts))
	counts := make([]float64, len(passCounts))
	for i, pc := range passCounts {
		names[i] = pc.Step
		counts[i] = float64(pc.Count)
	}

	p, err := charts.BarRender(
		[][]float64{counts},
		charts.SVGTypeOption(),
		charts.TitleTextOptionFunc("Declaration count per pipeline pass"),
		charts.XAxisDataOptionFunc(names),
		charts.ThemeOptionFunc("light"),
		charts.WidthOptionFunc(passChartWidth),
		charts.HeightOptionFunc(passChartHeight),
		charts.PaddingOptionFunc(charts.Box{Top: passChartPadTop, Right: passChartPadSide, Bottom: passChartPadSide, Left: passChartPadLeft}),
	)
	if err != nil {
		return "", err
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
