package drag

import "testing"

func TestAutoScroll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pointerY int
		height   int
		want     int
	}{
		{name: "near top scrolls up", pointerY: 50, height: 800, want: -10},
		{name: "top boundary is not near", pointerY: 100, height: 800, want: 0},
		{name: "just inside top", pointerY: 99, height: 800, want: -10},
		{name: "middle stays", pointerY: 400, height: 800, want: 0},
		{name: "near bottom scrolls down", pointerY: 750, height: 800, want: 10},
		{name: "bottom boundary is not near", pointerY: 700, height: 800, want: 0},
		{name: "just inside bottom", pointerY: 701, height: 800, want: 10},
		{name: "short viewport prefers up", pointerY: 50, height: 120, want: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AutoScroll(tt.pointerY, tt.height); got != tt.want {
				t.Errorf("AutoScroll(%d, %d) = %d, want %d", tt.pointerY, tt.height, got, tt.want)
			}
		})
	}
}
