// file: internals/features/parent/badges/service/evaluate_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var required = []string{"parent-education-1", "parent-education-2", "parent-education-5"}

func TestEvaluateCollectedWinsRegardlessOfMap(t *testing.T) {
	maps := []map[string]bool{
		nil,
		{},
		{"parent-education-1": true, "parent-education-2": true, "parent-education-5": true},
		{"parent-education-1": false},
	}
	for _, m := range maps {
		assert.Equal(t, StateCollected, Evaluate(required, true, m))
	}
}

func TestEvaluateReadyIffAllRequiredTrue(t *testing.T) {
	full := map[string]bool{
		"parent-education-1": true,
		"parent-education-2": true,
		"parent-education-5": true,
	}
	assert.Equal(t, StateReadyToCollect, Evaluate(required, false, full))

	// any single prerequisite missing locks the badge
	for _, id := range required {
		m := map[string]bool{}
		for k, v := range full {
			m[k] = v
		}
		m[id] = false
		assert.Equal(t, StateLocked, Evaluate(required, false, m), "flipped %s", id)
	}
}

func TestEvaluateMissingKeysReadFalse(t *testing.T) {
	assert.Equal(t, StateLocked, Evaluate(required, false, nil))
	assert.Equal(t, StateLocked, Evaluate(required, false, map[string]bool{}))
	assert.Equal(t, StateLocked, Evaluate(required, false, map[string]bool{
		"parent-education-1": true,
		"parent-education-2": true,
		// 5 absent entirely
	}))
}

func TestEvaluateExtraKeysIgnored(t *testing.T) {
	m := map[string]bool{
		"parent-education-1":  true,
		"parent-education-2":  true,
		"parent-education-5":  true,
		"parent-education-99": false,
	}
	assert.Equal(t, StateReadyToCollect, Evaluate(required, false, m))
}

func TestEvaluateNoRequirements(t *testing.T) {
	assert.Equal(t, StateReadyToCollect, Evaluate(nil, false, nil))
}

func TestEvaluateRecomputesAfterRegression(t *testing.T) {
	m := map[string]bool{
		"parent-education-1": true,
		"parent-education-2": true,
		"parent-education-5": true,
	}
	assert.Equal(t, StateReadyToCollect, Evaluate(required, false, m))

	// stale true values must not survive a prerequisite regressing
	m["parent-education-2"] = false
	assert.Equal(t, StateLocked, Evaluate(required, false, m))
}

func TestDecideCollectRepeatShortCircuits(t *testing.T) {
	full := map[string]bool{
		"parent-education-1": true,
		"parent-education-2": true,
		"parent-education-5": true,
	}

	// first attempt awards; the server then sets the collected flag
	first := DecideCollect(required, false, full)
	second := DecideCollect(required, true, full)

	assert.Equal(t, CollectAwarded, first)
	assert.Equal(t, CollectAlreadyOwned, second)

	// exactly one attempt in the sequence may award
	awards := 0
	for _, outcome := range []CollectOutcome{first, second} {
		if outcome == CollectAwarded {
			awards++
		}
	}
	assert.Equal(t, 1, awards)

	// once owned, the outcome ignores the map entirely
	assert.Equal(t, CollectAlreadyOwned, DecideCollect(required, true, nil))
	assert.Equal(t, CollectAlreadyOwned, DecideCollect(required, true, map[string]bool{"parent-education-1": false}))
}

func TestDecideCollectLockedWhenPrereqMissing(t *testing.T) {
	assert.Equal(t, CollectLocked, DecideCollect(required, false, nil))
	assert.Equal(t, CollectLocked, DecideCollect(required, false, map[string]bool{
		"parent-education-1": true,
		"parent-education-2": true,
	}))
}

func TestPrereqs(t *testing.T) {
	m := map[string]bool{"parent-education-1": true}
	out := Prereqs(required, m)
	assert.Equal(t, []Prereq{
		{GameID: "parent-education-1", Completed: true},
		{GameID: "parent-education-2", Completed: false},
		{GameID: "parent-education-5", Completed: false},
	}, out)
}
