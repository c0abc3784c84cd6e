package assets

import "fmt"

// MaxAssetNameLength bounds template and page names.
const MaxAssetNameLength = 64

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and
// '_'. Separators and dots never reach the filesystem, so a name cannot
// leave its directory or pick another extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
