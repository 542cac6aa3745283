package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that could reach outside the asset
// directory or pick another extension: empty names and anything holding a
// slash, a backslash or a dot.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if i := strings.IndexAny(name, `/\.`); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidAssetName, name, name[i])
	}
	return nil
}
