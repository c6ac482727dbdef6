// file: internals/features/parent/badges/dto/badge_dto.go
package dto

import (
	"time"

	service "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/service"
)

type BadgeStatusResponse struct {
	BadgeSlug     string           `json:"badge_slug"`
	BadgeName     string           `json:"badge_name"`
	State         service.State    `json:"state"`
	RequiredCount int              `json:"required_count"`
	Prereqs       []service.Prereq `json:"prereqs"`
	CoinBonus     int              `json:"coin_bonus"`
}

type CollectedBadgeResponse struct {
	BadgeSlug   string    `json:"badge_slug"`
	BadgeName   string    `json:"badge_name"`
	CollectedAt time.Time `json:"collected_at"`
}

type CollectBadgeResponse struct {
	BadgeSlug    string `json:"badge_slug"`
	BadgeName    string `json:"badge_name"`
	CoinsEarned  int    `json:"coins_earned"`
	AlreadyOwned bool   `json:"already_owned"`
}
