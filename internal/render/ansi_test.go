package render

import (
	"strings"
	"testing"
)

func TestMoveTo(t *testing.T) {
	if got, want := MoveTo(3, 7), "\x1b[3;7H"; got != want {
		t.Errorf("MoveTo(3, 7) = %q, want %q", got, want)
	}
}

func TestWriteCellSGR(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{
			"plain",
			Cell{Ch: 'x', FgR: 1, FgG: 2, FgB: 3, BgR: 4, BgG: 5, BgB: 6},
			"\x1b[0;38;2;1;2;3;48;2;4;5;6mx",
		},
		{
			"bold",
			Cell{Ch: halfBlock, FgR: 255, BgB: 128, Bold: true},
			"\x1b[0;1;38;2;255;0;0;48;2;0;0;128m▀",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			WriteCellSGR(&sb, tt.cell)
			if got := sb.String(); got != tt.want {
				t.Errorf("WriteCellSGR = %q, want %q", got, tt.want)
			}
		})
	}
}
