package back

import (
	"bytes"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	chart "github.com/wcharczuk/go-chart/v2"
)

const emptySVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

// GetPlayerRatingGraph renders both rating tracks of a player over their
// checkpoint history as an SVG.
func (b *Back) GetPlayerRatingGraph(name string) ([]byte, error) {
	var ret []byte
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByName(tx, name)
		if err != nil {
			return err
		}

		history, err := getCheckpointsByPlayer(tx, player.ID)
		if err != nil {
			return err
		}

		ret, err = generateRatingGraph(history)
		return err
	}); err != nil {
		return nil, err
	}

	return ret, nil
}

func generateRatingGraph(history []Checkpoint) ([]byte, error) {
	if len(history) < 2 {
		// Not enough data, return nothing.
		return []byte(emptySVG), nil
	}

	ts := make([]float64, len(history))
	rating := make([]float64, len(history))
	roundRating := make([]float64, len(history))

	for i := range history {
		ts[i] = float64(history[i].Timestamp.Time().Unix())
		rating[i] = float64(history[i].RatingAfter)
		roundRating[i] = float64(history[i].RoundRatingAfter)
	}

	graph := chart.Chart{
		Width:      620,
		Height:     200,
		Canvas:     chart.Style{FillColor: chart.ColorTransparent},
		Background: chart.Style{FillColor: chart.ColorTransparent},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				return time.Unix(int64(v.(float64)), 0).Format("2006-01-02")
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Rating",
				XValues: ts,
				YValues: rating,
			},
			chart.ContinuousSeries{
				Name:    "Round rating",
				XValues: ts,
				YValues: roundRating,
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	return renderChart(graph)
}

type renderable interface {
	Render(chart.RendererProvider, io.Writer) error
}

func renderChart(r renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
