// file: internals/features/parent/games/model/game_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Game is one row of the seeded catalog. Identity is the string id
// "parent-education-<N>"; badge games carry the flag and sit outside
// the sequential unlock chain.
type Game struct {
	GameID        string `gorm:"column:game_id;size:60;primaryKey" json:"game_id"`
	GameIndex     int    `gorm:"column:game_index;not null;uniqueIndex" json:"game_index"`
	GameTitle     string `gorm:"column:game_title;size:120;not null" json:"game_title"`
	GameCalmCoins int    `gorm:"column:game_calm_coins;not null;default:0" json:"game_calm_coins"`
	GameIsBadge   bool   `gorm:"column:game_is_badge;not null;default:false" json:"game_is_badge"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}

// GameIDForIndex builds the catalog id for a sequential index.
func GameIDForIndex(n int) string {
	return fmt.Sprintf("parent-education-%d", n)
}

type GameProgress struct {
	GameProgressID             uuid.UUID `gorm:"column:game_progress_id;type:uuid;default:gen_random_uuid();primaryKey" json:"game_progress_id"`
	GameProgressUserID         uuid.UUID `gorm:"column:game_progress_user_id;type:uuid;not null;uniqueIndex:idx_game_progress_user_game" json:"game_progress_user_id"`
	GameProgressGameID         string    `gorm:"column:game_progress_game_id;size:60;not null;uniqueIndex:idx_game_progress_user_game" json:"game_progress_game_id"`
	GameProgressFullyCompleted bool      `gorm:"column:game_progress_fully_completed;not null;default:false" json:"game_progress_fully_completed"`
	GameProgressReplayUnlocked bool      `gorm:"column:game_progress_replay_unlocked;not null;default:false" json:"game_progress_replay_unlocked"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GameProgress) TableName() string {
	return "game_progresses"
}

type CoinWallet struct {
	CoinWalletID      uuid.UUID `gorm:"column:coin_wallet_id;type:uuid;default:gen_random_uuid();primaryKey" json:"coin_wallet_id"`
	CoinWalletUserID  uuid.UUID `gorm:"column:coin_wallet_user_id;type:uuid;not null;uniqueIndex" json:"coin_wallet_user_id"`
	CoinWalletBalance int       `gorm:"column:coin_wallet_balance;not null;default:0" json:"coin_wallet_balance"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CoinWallet) TableName() string {
	return "coin_wallets"
}

// ReplayUnlockCost is the coin price of re-attempting a fully
// completed game.
const ReplayUnlockCost = 20

// SeedGames inserts the catalog, updating titles/rewards on conflict so
// catalog edits ship with a deploy.
func SeedGames(db *gorm.DB) error {
	regular := []string{
		"Calm Breathing", "Feelings Check-In", "Listening Practice",
		"Praise That Works", "Routine Builder", "Screen Time Talk",
		"Mealtime Peace", "Homework Habits", "Sibling Harmony",
		"Bedtime Wind-Down", "Mindful Moments", "Anger First Aid",
		"Gratitude Garden", "Self-Care Basics", "Family Meetings",
	}

	games := make([]Game, 0, len(regular)+10)
	for i, title := range regular {
		games = append(games, Game{
			GameID:        GameIDForIndex(i + 1),
			GameIndex:     i + 1,
			GameTitle:     title,
			GameCalmCoins: 10,
		})
	}
	// badge games sit after the regular chain and are exempt from
	// sequential unlock
	badgeTitles := []string{
		"Calm Starter Badge", "Connection Badge", "Routine Master Badge",
		"Patience Badge", "Mealtime Badge", "Focus Badge",
		"Harmony Badge", "Mindfulness Badge", "Gratitude Badge",
		"Self-Care Champion Badge",
	}
	for i, title := range badgeTitles {
		idx := len(regular) + i + 1
		games = append(games, Game{
			GameID:        GameIDForIndex(idx),
			GameIndex:     idx,
			GameTitle:     title,
			GameCalmCoins: 0,
			GameIsBadge:   true,
		})
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"game_title", "game_calm_coins", "game_is_badge", "game_index"}),
	}).Create(&games).Error
}
