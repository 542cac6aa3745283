package pdfops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermark(t *testing.T) {
	t.Parallel()

	pdf := samplePDF(t, 300, 400)
	out, err := New().Watermark(pdf, WatermarkOptions{Text: "CONFIDENTIAL"})
	require.NoError(t, err)

	assert.Greater(t, len(out), len(pdf))
	assert.Equal(t, []int{300, 400}, pageWidths(t, out))
}

func TestWatermarkOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    WatermarkOptions
		wantErr error
	}{
		{"defaults", WatermarkOptions{Text: "DRAFT"}, nil},
		{"custom", WatermarkOptions{Text: "DRAFT", FontSize: 72, Opacity: 0.5, Rotation: 30, Color: "#ff0000"}, nil},
		{"empty text", WatermarkOptions{}, ErrEmptyWatermark},
		{"blank text", WatermarkOptions{Text: "   "}, ErrEmptyWatermark},
		{"huge font", WatermarkOptions{Text: "x", FontSize: 501}, ErrInvalidWatermark},
		{"opacity above one", WatermarkOptions{Text: "x", Opacity: 1.5}, ErrInvalidWatermark},
		{"rotation out of range", WatermarkOptions{Text: "x", Rotation: 270}, ErrInvalidWatermark},
		{"bad color", WatermarkOptions{Text: "x", Color: "gray"}, ErrInvalidWatermark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWatermarkOptions_Description(t *testing.T) {
	t.Parallel()

	got := WatermarkOptions{Text: "x"}.withDefaults().description()
	assert.Equal(t, "fontname:Helvetica-Bold, points:48, rotation:-45, opacity:0.30, fillcolor:#808080, scalefactor:1 abs", got)
}
