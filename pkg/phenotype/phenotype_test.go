package phenotype

import (
	"testing"

	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type PhenotypeTestSuite struct {
	suite.Suite
}

func TestPhenotypeSuite(t *testing.T) {
	suite.Run(t, new(PhenotypeTestSuite))
}

func (suite *PhenotypeTestSuite) TestConstructors() {
	suite.Equal(Descriptor{Kind: KindInt, Min: 1, Max: 20}, Range(1, 20))
	suite.Equal(Descriptor{Kind: KindInt0, Min: 1, Max: 20}, Range0(1, 20))
	suite.Equal(Descriptor{Kind: KindFloat, Min: -1, Max: 5}, RangeFloat(-1, 5))
	suite.Equal(Descriptor{Kind: KindIntPeriod, Min: 10, Max: 120, Period: "m"}, RangePeriod(10, 120, "m"))
	suite.Equal(Descriptor{Kind: KindList, Options: []string{"maker", "taker"}}, ListOption("maker", "taker"))
}

func (suite *PhenotypeTestSuite) TestContains() {
	tests := []struct {
		name     string
		d        Descriptor
		value    float64
		expected bool
	}{
		{"int inside", Range(1, 20), 10, true},
		{"int bounds", Range(1, 20), 20, true},
		{"int fraction", Range(1, 20), 2.5, false},
		{"int below", Range(1, 20), 0, false},
		{"int0 zero", Range0(1, 20), 0, true},
		{"int0 inside", Range0(1, 20), 5, true},
		{"int0 above", Range0(1, 20), 21, false},
		{"float inside", RangeFloat(0.001, 4), 0.5, true},
		{"float below", RangeFloat(0.001, 4), 0, false},
		{"period inside", RangePeriod(10, 120, "m"), 60, true},
		{"list number", ListOption("maker"), 1, false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.expected, tt.d.Contains(tt.value))
		})
	}
}

func (suite *PhenotypeTestSuite) TestContainsOption() {
	d := ListOption("maker", "taker")
	suite.True(d.ContainsOption("taker"))
	suite.False(d.ContainsOption("market"))
	suite.False(Range(1, 2).ContainsOption("maker"))
}

func (suite *PhenotypeTestSuite) TestValidate() {
	suite.NoError(Range(1, 20).Validate())
	suite.NoError(RangePeriod(10, 120, "m").Validate())
	suite.NoError(ListOption("maker", "taker").Validate())

	err := Range(20, 1).Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	suite.Error(RangePeriod(10, 120, "").Validate())
	suite.Error(RangePeriod(10, 120, "w").Validate())
	suite.Error(ListOption().Validate())
	suite.Error(Descriptor{Kind: "gaussian"}.Validate())
}

func (suite *PhenotypeTestSuite) TestSetNamesAndMerge() {
	common := Set{"min_periods": Range(1, 100), "order_type": ListOption("maker", "taker")}
	strategy := Set{"rsi_periods": Range(1, 200), "min_periods": Range(10, 50)}

	merged := common.Merge(strategy)
	suite.Equal([]string{"min_periods", "order_type", "rsi_periods"}, merged.Names())
	suite.Equal(Range(10, 50), merged["min_periods"])
	// inputs untouched
	suite.Equal(Range(1, 100), common["min_periods"])
	suite.NoError(merged.Validate())
}

func (suite *PhenotypeTestSuite) TestSetValidateNamesBadEntry() {
	set := Set{"ok": Range(1, 2), "broken": Range(3, 1)}

	err := set.Validate()
	suite.Require().Error(err)
	suite.Contains(err.Error(), "phenotype broken")
}

func (suite *PhenotypeTestSuite) TestYAML() {
	out, err := yaml.Marshal(Set{"period_length": RangePeriod(10, 120, "m")})
	suite.Require().NoError(err)
	suite.Contains(string(out), "type: intperiod")
	suite.Contains(string(out), "period: m")
	suite.NotContains(string(out), "options")

	var decoded Set
	suite.Require().NoError(yaml.Unmarshal(out, &decoded))
	suite.Equal(RangePeriod(10, 120, "m"), decoded["period_length"])
}
