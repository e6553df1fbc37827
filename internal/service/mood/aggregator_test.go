package mood

import "testing"

func TestCompute(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"no tasks keeps neutral default", 0, 0, 50},
		{"none completed", 0, 4, 0},
		{"one of four", 1, 4, 25},
		{"half", 2, 4, 50},
		{"all completed", 4, 4, 100},
		{"rounds to nearest", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"clamps above hundred", 7, 4, 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Compute(c.completed, c.total); got != c.want {
				t.Fatalf("Compute(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	first := Compute(3, 8)
	second := Compute(3, 8)
	if first != second {
		t.Fatalf("Compute not deterministic: %d != %d", first, second)
	}
}
