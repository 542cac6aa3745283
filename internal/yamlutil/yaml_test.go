package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-pdfdesk/internal/yamlutil"
)

type pageSection struct {
	Format      string  `yaml:"format"`
	Orientation string  `yaml:"orientation"`
	Scale       float64 `yaml:"scale"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		want    pageSection
	}{
		{
			name: "valid YAML",
			data: []byte("format: letter\norientation: landscape\nscale: 1.5"),
			dest: &pageSection{},
			want: pageSection{Format: "letter", Orientation: "landscape", Scale: 1.5},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &pageSection{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("format: a4"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
			}
			if got := *tt.dest.(*pageSection); got != tt.want {
				t.Errorf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalStrict_DecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         string
		wantContains string
	}{
		{"unknown field", "format: a4\nmargin: 2", "margin"},
		{"wrong type", "scale: [1, 2]", "scale"},
		{"syntax error", "format: [a4", "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict([]byte(tt.data), &pageSection{})
			var decodeErr *yamlutil.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("UnmarshalStrict() error = %v, want *DecodeError", err)
			}
			if decodeErr.Unwrap() == nil {
				t.Error("DecodeError.Unwrap() = nil")
			}
			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q should mention %q", err, tt.wantContains)
			}
		})
	}
}

func TestUnmarshalStrict_SizeLimit(t *testing.T) {
	// Not parallel: modifies the package-level limit.
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 16
	defer func() { yamlutil.MaxInputSize = orig }()

	data := []byte("format: " + strings.Repeat("a", 32))
	err := yamlutil.UnmarshalStrict(data, &pageSection{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(pageSection{Format: "a4", Orientation: "portrait", Scale: 2})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	for _, want := range []string{"format: a4", "orientation: portrait", "scale: 2"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, out)
		}
	}
}
