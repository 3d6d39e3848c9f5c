package acs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnsupportedYear(t *testing.T) {
	_, err := New(Config{SurveyYear: 2000, Horizon: HorizonOneYear, Survey: SurveyPerson, RootDir: "data"})
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	assert.Contains(t, err.Error(), "2000")
}

func TestNewRejectsUnsupportedHorizon(t *testing.T) {
	_, err := New(Config{SurveyYear: 2015, Horizon: "2-Year", Survey: SurveyPerson, RootDir: "data"})
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	assert.Contains(t, err.Error(), "2-Year")
}

func TestNewRejectsUnsupportedSurvey(t *testing.T) {
	_, err := New(Config{SurveyYear: 2015, Horizon: HorizonOneYear, Survey: "invalid value", RootDir: "data"})
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestNewAcceptsValidConfig(t *testing.T) {
	ds, err := New(Config{SurveyYear: 2015, Horizon: HorizonOneYear, Survey: SurveyPerson, RootDir: "data"})
	require.NoError(t, err)
	assert.Equal(t, 2015, ds.Config().SurveyYear)
}

func TestResolveIsDeterministicAcrossInstances(t *testing.T) {
	cfg := Config{SurveyYear: 2018, Horizon: HorizonFiveYear, Survey: SurveyHousehold, RootDir: "data"}
	a := mustNew(t, cfg)
	b := mustNew(t, cfg)

	resA, err := a.Resolve([]string{"TN", "CA"})
	require.NoError(t, err)
	resB, err := b.Resolve([]string{"TN", "CA"})
	require.NoError(t, err)
	assert.Equal(t, resA, resB)
}

func TestResolveNormalizesCase(t *testing.T) {
	ds := mustNew(t, Config{SurveyYear: 2016, Horizon: HorizonFiveYear, Survey: SurveyPerson, RootDir: "data"})

	lower, err := ds.Resolve([]string{"tn"})
	require.NoError(t, err)
	upper, err := ds.Resolve([]string{"TN"})
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	assert.Equal(t, "TN", lower[0].State)
}

func TestResolveRejectsUnknownState(t *testing.T) {
	ds := mustNew(t, Config{SurveyYear: 2016, Horizon: HorizonFiveYear, Survey: SurveyPerson, RootDir: "data"})

	_, err := ds.Resolve([]string{"invalid_state"})
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
	assert.Contains(t, err.Error(), "invalid_state")
}

func TestResolveRejectsEmptyStateList(t *testing.T) {
	ds := mustNew(t, Config{SurveyYear: 2016, Horizon: HorizonFiveYear, Survey: SurveyPerson, RootDir: "data"})

	_, err := ds.Resolve(nil)
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestResolveExpandsAllPlaceholder(t *testing.T) {
	ds := mustNew(t, Config{SurveyYear: 2018, Horizon: HorizonOneYear, Survey: SurveyPerson, RootDir: "data"})

	res, err := ds.Resolve([]string{"all"})
	require.NoError(t, err)
	require.Len(t, res, len(AllStates()))
	assert.Equal(t, "AK", res[0].State)
}

func TestAllStatesIncludesTerritories(t *testing.T) {
	states := AllStates()
	assert.Len(t, states, 52)
	assert.Contains(t, states, "DC")
	assert.Contains(t, states, "PR")
}
