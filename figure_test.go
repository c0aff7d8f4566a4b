package signalplot

import (
	"strings"
	"testing"
)

func TestBuildFigure(t *testing.T) {
	traces := []Trace{
		{Name: "Fz", Role: RoleEEG, X: []float64{0, 1}, Y: []float64{10, 20}},
		{Name: "Cz", Role: RoleEEG, X: []float64{0, 1}, Y: []float64{11, 21}},
		{Name: "X1:LEOG", Role: RoleECG, X: []float64{0, 1}, Y: []float64{1, 2}},
		{Name: "CM", Role: RoleCM, X: []float64{0, 1}, Y: []float64{100, 100}},
	}

	t.Run("axis assignment follows role", func(t *testing.T) {
		figure, err := BuildFigure(traces, FigureOptions{Title: "test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantAxis := map[string]int{"Fz": 0, "Cz": 0, "X1:LEOG": 1, "CM": 2}
		if len(figure.MultiSeries) != len(wantAxis) {
			t.Fatalf("expected %d series, got %d", len(wantAxis), len(figure.MultiSeries))
		}
		for _, series := range figure.MultiSeries {
			want, ok := wantAxis[series.Name]
			if !ok {
				t.Fatalf("unexpected series %q", series.Name)
			}
			if series.YAxisIndex != want {
				t.Fatalf("series %q on y-axis %d, want %d", series.Name, series.YAxisIndex, want)
			}
		}
	})

	t.Run("declares all three y axes", func(t *testing.T) {
		figure, err := BuildFigure(traces, FigureOptions{Title: "test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(figure.YAxisList) != 3 {
			t.Fatalf("expected 3 y axes, got %d", len(figure.YAxisList))
		}
		if figure.YAxisList[0].Name != "EEG (µV)" {
			t.Fatalf("unexpected primary axis label %q", figure.YAxisList[0].Name)
		}
	})

	t.Run("normalized labels", func(t *testing.T) {
		figure, err := BuildFigure(traces, FigureOptions{Title: "test", Normalized: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, axis := range figure.YAxisList {
			if !strings.Contains(axis.Name, "normalized") {
				t.Fatalf("expected normalized axis label, got %q", axis.Name)
			}
		}
	})

	t.Run("no traces is an error", func(t *testing.T) {
		_, err := BuildFigure(nil, FigureOptions{})
		if err != ErrNoPlottableChannels {
			t.Fatalf("expected ErrNoPlottableChannels, got %v", err)
		}
	})

	t.Run("renders to standalone HTML", func(t *testing.T) {
		figure, err := BuildFigure(traces, FigureOptions{Title: "render test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		page, err := RenderHTML(figure)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		html := string(page)
		if !strings.Contains(html, "echarts") {
			t.Fatal("rendered page does not reference the charting library")
		}
		for _, name := range []string{"Fz", "Cz", "X1:LEOG", "CM"} {
			if !strings.Contains(html, name) {
				t.Fatalf("rendered page is missing series %q", name)
			}
		}
	})
}
