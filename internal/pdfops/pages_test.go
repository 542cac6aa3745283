package pdfops

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sel     string
		count   int
		want    []int
		wantErr bool
	}{
		{"", 3, []int{1, 2, 3}, false},
		{"all", 2, []int{1, 2}, false},
		{"2", 3, []int{2}, false},
		{"1-3,5", 5, []int{1, 2, 3, 5}, false},
		{"3-1", 3, []int{3, 2, 1}, false},
		{" 2 , 2 ", 3, []int{2, 2}, false},
		{"4-end", 6, []int{4, 5, 6}, false},
		{"0", 3, nil, true},
		{"4", 3, nil, true},
		{"1,,2", 3, nil, true},
		{"a-b", 3, nil, true},
		{"1", 0, nil, true},
	}

	for _, tt := range tests {
		got, err := ParsePages(tt.sel, tt.count)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrInvalidPageSelection), "ParsePages(%q, %d) error = %v", tt.sel, tt.count, err)
			continue
		}
		assert.NoError(t, err, "ParsePages(%q, %d)", tt.sel, tt.count)
		assert.Equal(t, tt.want, got, "ParsePages(%q, %d)", tt.sel, tt.count)
	}
}

func TestFormatPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1-3,5", FormatPages([]int{1, 2, 3, 5}))
	assert.Equal(t, "3,2,1", FormatPages([]int{3, 2, 1}))
	assert.Equal(t, "", FormatPages(nil))
}
