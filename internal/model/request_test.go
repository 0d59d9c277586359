package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRequestsExpandsCardinalityInDeterministicOrder(t *testing.T) {
	inst := &Instance{
		Classes: []ClassGroup{
			{ID: "c2", SubjectRequirements: map[string]SubjectRequirement{"math": {PeriodsPerWeek: 2}}},
			{ID: "c1", SubjectRequirements: map[string]SubjectRequirement{
				"science": {PeriodsPerWeek: 1},
				"math":    {PeriodsPerWeek: 2},
			}},
		},
	}

	requests := BuildRequests(inst)
	require.Len(t, requests, 5)

	// c1 sorts before c2; within a class, subject ids sort lexically
	// (math before science).
	require.Equal(t, "c1", requests[0].ClassID)
	require.Equal(t, "math", requests[0].SubjectID)
	require.Equal(t, "c1", requests[1].ClassID)
	require.Equal(t, "math", requests[1].SubjectID)
	require.Equal(t, "c1", requests[2].ClassID)
	require.Equal(t, "science", requests[2].SubjectID)
	require.Equal(t, "c2", requests[3].ClassID)
	require.Equal(t, "c2", requests[4].ClassID)

	for i, r := range requests {
		require.Equal(t, i, r.ID)
		require.Equal(t, 1, r.Length)
	}
}

func TestBuildRequestsCarriesConsecutivePeriods(t *testing.T) {
	consecutive := 2
	inst := &Instance{
		Classes: []ClassGroup{
			{ID: "c1", SubjectRequirements: map[string]SubjectRequirement{
				"math": {PeriodsPerWeek: 1, ConsecutivePeriods: &consecutive},
			}},
		},
	}
	requests := BuildRequests(inst)
	require.Len(t, requests, 1)
	require.NotNil(t, requests[0].Consecutive)
	require.Equal(t, 2, *requests[0].Consecutive)
}

func TestBuildRequestsEmptyInstance(t *testing.T) {
	require.Empty(t, BuildRequests(&Instance{}))
}
