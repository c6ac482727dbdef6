// file: internals/features/parent/games/service/unlock_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/model"
)

func regularGame(index int) model.Game {
	return model.Game{GameID: model.GameIDForIndex(index), GameIndex: index}
}

func TestIsUnlockedFirstGameAlwaysOpen(t *testing.T) {
	g := regularGame(1)
	assert.True(t, IsUnlocked(g, nil))
	assert.True(t, IsUnlocked(g, map[string]bool{}))
	assert.True(t, IsUnlocked(g, map[string]bool{"parent-education-1": false}))
}

func TestIsUnlockedSequential(t *testing.T) {
	g3 := regularGame(3)

	assert.False(t, IsUnlocked(g3, map[string]bool{}))
	assert.False(t, IsUnlocked(g3, map[string]bool{"parent-education-1": true}))
	assert.True(t, IsUnlocked(g3, map[string]bool{"parent-education-2": true}))

	// only the immediate predecessor matters
	assert.True(t, IsUnlocked(g3, map[string]bool{
		"parent-education-1": false,
		"parent-education-2": true,
	}))
}

func TestIsUnlockedMissingKeysReadFalse(t *testing.T) {
	g2 := regularGame(2)
	assert.False(t, IsUnlocked(g2, map[string]bool{"parent-education-99": true}))
	assert.False(t, IsUnlocked(g2, nil))
}

func TestIsUnlockedBadgeGamesSkipChain(t *testing.T) {
	badge := model.Game{GameID: model.GameIDForIndex(16), GameIndex: 16, GameIsBadge: true}
	// empty map would lock index 16 hard under the sequential rule
	assert.True(t, IsUnlocked(badge, map[string]bool{}))
}

func TestIsUnlockedRecomputesFromMap(t *testing.T) {
	g2 := regularGame(2)
	m := map[string]bool{"parent-education-1": true}
	assert.True(t, IsUnlocked(g2, m))

	// a regressed prerequisite must not be served from stale state
	m["parent-education-1"] = false
	assert.False(t, IsUnlocked(g2, m))
}

func TestFullyCompleted(t *testing.T) {
	assert.True(t, FullyCompleted(5, 5))
	assert.False(t, FullyCompleted(4, 5))
	assert.False(t, FullyCompleted(0, 0))
	assert.False(t, FullyCompleted(6, 5))
}
