package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// CheckConfigVersion checks that a run config written for configVersion can be
// read by a binary at binaryVersion. An empty config version is always accepted.
//
// Compatibility rules:
//   - "main" on either side skips the check
//   - major and minor versions must match
//   - patch versions may differ
func CheckConfigVersion(binaryVersion, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || binaryVersion == "main" || configVersion == "main" {
		return nil
	}

	binary, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid binary version '%s'", binaryVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid config version '%s'", configVersion)
	}

	if binary.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "major version mismatch: binary is %d.x.x but config requires %d.x.x",
			binary.Major(), config.Major())
	}

	if binary.Minor() != config.Minor() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "minor version mismatch: binary is %d.%d.x but config requires %d.%d.x",
			binary.Major(), binary.Minor(), config.Major(), config.Minor())
	}

	return nil
}
