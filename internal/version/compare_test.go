package version

import (
	"testing"

	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type VersionTestSuite struct {
	suite.Suite
}

func TestVersionSuite(t *testing.T) {
	suite.Run(t, new(VersionTestSuite))
}

func (suite *VersionTestSuite) TestCheckConfigVersion() {
	tests := []struct {
		name          string
		binary        string
		config        string
		errorContains string
	}{
		{name: "exact match", binary: "0.1.0", config: "0.1.0"},
		{name: "patch differs", binary: "0.1.3", config: "0.1.0"},
		{name: "v prefix", binary: "v0.1.0", config: "0.1.2"},
		{name: "empty config", binary: "0.1.0", config: ""},
		{name: "binary is main", binary: "main", config: "3.0.0"},
		{name: "config is main", binary: "0.1.0", config: "main"},
		{name: "prerelease", binary: "0.1.0-alpha", config: "0.1.0"},
		{name: "minor differs", binary: "0.2.0", config: "0.1.0", errorContains: "minor version mismatch"},
		{name: "major differs", binary: "1.1.0", config: "0.1.0", errorContains: "major version mismatch"},
		{name: "invalid config", binary: "0.1.0", config: "latest", errorContains: "invalid config version"},
		{name: "invalid binary", binary: "dev", config: "0.1.0", errorContains: "invalid binary version"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := CheckConfigVersion(tt.binary, tt.config)
			if tt.errorContains == "" {
				suite.NoError(err)

				return
			}

			suite.Error(err)
			suite.Contains(err.Error(), tt.errorContains)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *VersionTestSuite) TestGetVersion() {
	suite.Equal(Version, GetVersion())
}
