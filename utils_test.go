package signalplot

import (
	"math"
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		var input []int = nil
		pred := func(int) bool { return true }
		got := Filter(input, pred)
		want := []int{}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Filter(%v) = %v, want %v", input, got, want)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		input := []int{1, 2, 3}
		pred := func(x int) bool { return x > 10 }
		got := Filter(input, pred)
		want := []int{}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Filter(%v) = %v, want %v", input, got, want)
		}
	})

	t.Run("partial match", func(t *testing.T) {
		input := []int{1, 2, 3}
		pred := func(x int) bool { return x%2 == 1 }
		got := Filter(input, pred)
		want := []int{1, 3}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Filter(%v) = %v, want %v", input, got, want)
		}
	})
}

func TestMin(t *testing.T) {
	if got := Min(5, 3); got != 3 {
		t.Fatalf("Min(5,3) = %v, want 3", got)
	}

	if got := Min(4, 4); got != 4 {
		t.Fatalf("Min(4,4) = %v, want 4", got)
	}

	a := math.NaN()
	if got := Min(1.0, a); got != 1.0 {
		t.Fatalf("Min(1.0,NaN) = %v, want 1.0", got)
	}
}
