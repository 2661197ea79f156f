package versioning

import "fmt"

// Range is the half-open interval [Minimum, Maximum) of accepted versions.
type Range struct {
	Minimum string
	Maximum string
}

// Contains reports whether version is at least Minimum and strictly below Maximum.
func (versionRange Range) Contains(version string) bool {
	if Compare(version, versionRange.Minimum) < 0 {
		return false
	}
	return Compare(version, versionRange.Maximum) < 0
}

// String renders the range in interval notation.
func (versionRange Range) String() string {
	return fmt.Sprintf(rangeDescriptionTemplateConstant, versionRange.Minimum, versionRange.Maximum)
}
