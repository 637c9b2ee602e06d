package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnsupportedVersion is returned for manifests written by an incompatible
// format version.
var ErrUnsupportedVersion = errors.New("unsupported manifest format version")

// CheckCompatible accepts any version with the same major number as
// FormatVersion. A leading "v" is tolerated.
func CheckCompatible(version string) error {
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing format version %q: %w", version, err)
	}
	current, err := parseSemver(FormatVersion)
	if err != nil {
		return fmt.Errorf("parsing format version %q: %w", FormatVersion, err)
	}
	if v.Major() != current.Major() {
		return fmt.Errorf("%w: %s (this build reads %d.x)", ErrUnsupportedVersion, version, current.Major())
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
