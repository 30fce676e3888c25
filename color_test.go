package logostamp

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.NRGBA
		ok       bool
	}{
		{"#ffffff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"000000", color.NRGBA{A: 255}, true},
		{"#FF2211", color.NRGBA{R: 0xff, G: 0x22, B: 0x11, A: 255}, true},
		{"#f21", color.NRGBA{R: 0xff, G: 0x22, B: 0x11, A: 255}, true},
		{" #abcdef ", color.NRGBA{R: 0xab, G: 0xcd, B: 0xef, A: 255}, true},
		{"", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if tt.ok {
			assert.NoError(t, err, tt.input)
			assert.Equal(t, tt.expected, got, tt.input)
		} else {
			assert.Error(t, err, tt.input)
		}
	}
}
