package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegreeLevelRankOrdering(t *testing.T) {
	ordered := []DegreeLevel{
		DegreeHighSchool,
		DegreeAssociate,
		DegreeBachelor,
		DegreeMaster,
		DegreeDoctorate,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank(),
			"%s must outrank %s", ordered[i], ordered[i-1])
	}
}

func TestDegreeLevelOtherIsUnranked(t *testing.T) {
	assert.Equal(t, 0, DegreeOther.Rank())
	assert.Equal(t, 0, DegreeLevel("unknown").Rank())
}

func TestDegreeLevelValid(t *testing.T) {
	assert.True(t, DegreeBachelor.Valid())
	assert.True(t, DegreeOther.Valid())
	assert.False(t, DegreeLevel("diploma").Valid())
}

func TestBestDegreeRank(t *testing.T) {
	profile := ResumeProfile{
		Education: []Education{
			{Degree: "BS", Level: DegreeBachelor},
			{Degree: "MS", Level: DegreeMaster},
			{Degree: "Cert", Level: DegreeOther},
		},
	}
	assert.Equal(t, DegreeMaster.Rank(), profile.BestDegreeRank())
	assert.Equal(t, 0, ResumeProfile{}.BestDegreeRank())
}

func TestMaxInferredYears(t *testing.T) {
	three := 3.0
	seven := 7.5
	profile := ResumeProfile{
		Experience: []Experience{
			{Role: "A", InferredYears: &three},
			{Role: "B", InferredYears: nil},
			{Role: "C", InferredYears: &seven},
		},
	}
	assert.Equal(t, 7.5, profile.MaxInferredYears())
	assert.Equal(t, 0.0, ResumeProfile{}.MaxInferredYears())
}
