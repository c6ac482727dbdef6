// file: internals/features/parent/games/service/unlock.go
package service

import (
	model "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/model"
)

// IsUnlocked applies the sequential rule: index 1 is always playable,
// index n needs game n-1 fully completed. Badge games skip the chain
// entirely (their gating lives with the badge prerequisites). Reads of
// missing map keys are false, never an error; the map is consulted
// fresh on every call.
func IsUnlocked(game model.Game, completion map[string]bool) bool {
	if game.GameIsBadge {
		return true
	}
	if game.GameIndex <= 1 {
		return true
	}
	return completion[model.GameIDForIndex(game.GameIndex-1)]
}

// FullyCompleted reports whether a single attempt cleared every level.
// Partial scores never count.
func FullyCompleted(score, totalLevels int) bool {
	return totalLevels > 0 && score == totalLevels
}
