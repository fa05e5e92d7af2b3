package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"bookvenue/availability"
)

// RenderSlotPriceChart writes an HTML page with a bar chart of the price of each slot.
func RenderSlotPriceChart(w io.Writer, title, subtitle string, slots []availability.Slot) error {
	labels := make([]string, 0, len(slots))
	prices := make([]opts.BarData, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label)
		prices = append(prices, opts.BarData{Value: s.Price})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Slot",
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
	)
	bar.SetXAxis(labels).AddSeries("Price", prices,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render slot chart: %w", err)
	}
	return nil
}
