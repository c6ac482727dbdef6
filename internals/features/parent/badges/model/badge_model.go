// file: internals/features/parent/badges/model/badge_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeConfig is the single authoritative prerequisite table. The
// hand-curated lists it replaces disagreed with each other in places;
// this table is the source of truth and edits to it ship with a
// deploy, same as the game catalog.
type BadgeConfig struct {
	BadgeConfigSlug      string         `gorm:"column:badge_config_slug;size:60;primaryKey" json:"badge_config_slug"`
	BadgeConfigGameID    string         `gorm:"column:badge_config_game_id;size:60;not null;uniqueIndex" json:"badge_config_game_id"`
	BadgeConfigName      string         `gorm:"column:badge_config_name;size:120;not null" json:"badge_config_name"`
	BadgeConfigRequired  pq.StringArray `gorm:"column:badge_config_required;type:text[];not null" json:"badge_config_required"`
	BadgeConfigCoinBonus int            `gorm:"column:badge_config_coin_bonus;not null;default:0" json:"badge_config_coin_bonus"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BadgeConfig) TableName() string {
	return "badge_configs"
}

type CollectedBadge struct {
	CollectedBadgeID     uuid.UUID `gorm:"column:collected_badge_id;type:uuid;default:gen_random_uuid();primaryKey" json:"collected_badge_id"`
	CollectedBadgeUserID uuid.UUID `gorm:"column:collected_badge_user_id;type:uuid;not null;uniqueIndex:idx_collected_badge_user_slug" json:"collected_badge_user_id"`
	CollectedBadgeSlug   string    `gorm:"column:collected_badge_slug;size:60;not null;uniqueIndex:idx_collected_badge_user_slug" json:"collected_badge_slug"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CollectedBadge) TableName() string {
	return "collected_badges"
}

func ids(indices ...int) pq.StringArray {
	out := make(pq.StringArray, 0, len(indices))
	for _, n := range indices {
		out = append(out, gameID(n))
	}
	return out
}

func gameID(n int) string {
	return fmt.Sprintf("parent-education-%d", n)
}

// SeedBadgeConfigs installs the prerequisite table. Several lists skip
// indices on purpose; they are curated, not derived from index ranges.
func SeedBadgeConfigs(db *gorm.DB) error {
	configs := []BadgeConfig{
		{BadgeConfigSlug: "calm-starter", BadgeConfigGameID: gameID(16), BadgeConfigName: "Calm Starter", BadgeConfigRequired: ids(1, 2), BadgeConfigCoinBonus: 15},
		{BadgeConfigSlug: "connection", BadgeConfigGameID: gameID(17), BadgeConfigName: "Connection", BadgeConfigRequired: ids(3, 4), BadgeConfigCoinBonus: 15},
		{BadgeConfigSlug: "routine-master", BadgeConfigGameID: gameID(18), BadgeConfigName: "Routine Master", BadgeConfigRequired: ids(5, 8), BadgeConfigCoinBonus: 20},
		{BadgeConfigSlug: "patience", BadgeConfigGameID: gameID(19), BadgeConfigName: "Patience", BadgeConfigRequired: ids(2, 12), BadgeConfigCoinBonus: 20},
		{BadgeConfigSlug: "mealtime", BadgeConfigGameID: gameID(20), BadgeConfigName: "Mealtime", BadgeConfigRequired: ids(6, 7), BadgeConfigCoinBonus: 15},
		{BadgeConfigSlug: "focus", BadgeConfigGameID: gameID(21), BadgeConfigName: "Focus", BadgeConfigRequired: ids(6, 8), BadgeConfigCoinBonus: 20},
		{BadgeConfigSlug: "harmony", BadgeConfigGameID: gameID(22), BadgeConfigName: "Harmony", BadgeConfigRequired: ids(9, 10), BadgeConfigCoinBonus: 20},
		{BadgeConfigSlug: "mindfulness", BadgeConfigGameID: gameID(23), BadgeConfigName: "Mindfulness", BadgeConfigRequired: ids(1, 11, 12), BadgeConfigCoinBonus: 25},
		{BadgeConfigSlug: "gratitude", BadgeConfigGameID: gameID(24), BadgeConfigName: "Gratitude", BadgeConfigRequired: ids(13, 15), BadgeConfigCoinBonus: 25},
		{BadgeConfigSlug: "self-care-champion", BadgeConfigGameID: gameID(25), BadgeConfigName: "Self-Care Champion", BadgeConfigRequired: ids(11, 13, 14), BadgeConfigCoinBonus: 30},
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "badge_config_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"badge_config_game_id", "badge_config_name", "badge_config_required", "badge_config_coin_bonus"}),
	}).Create(&configs).Error
}
