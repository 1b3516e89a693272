package performanceservice

import (
	"bytes"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours used by the score chart.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Text       drawing.Color
}

// DefaultPalette is the slackline blue theme.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("ffffff"),
	Bar:        drawing.ColorFromHex("1e88e5"),
	Text:       drawing.ColorFromHex("263238"),
}

// ScoreBar is one athlete's bar.
type ScoreBar struct {
	Name  string
	Score float64
}

// GenerateScoreChart renders bars as a PNG, in the given order.
func GenerateScoreChart(bars []ScoreBar, palette ChartPalette) ([]byte, error) {
	if len(bars) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	top := 0.0
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		top = math.Max(top, b.Score)
		values[i] = chart.Value{
			Label: b.Name,
			Value: b.Score,
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
	}

	width := 100*len(bars) + 200
	if width < 480 {
		width = 480
	}

	graph := chart.BarChart{
		Title:  "Best score per athlete",
		Width:  width,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			// A fixed range keeps all-zero scores renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(top, 1) * 1.1},
			Style: chart.Style{
				FontColor: palette.Text,
			},
		},
		BarWidth:   60,
		BarSpacing: 40,
		Bars:       values,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws the message straight onto a renderer since
// go-chart refuses to render a chart without series.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No performances recorded"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)

	r.SetFillColor(palette.Background)
	r.SetStrokeColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.FillStroke()

	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
