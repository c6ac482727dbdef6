// file: internals/features/parent/games/dto/game_dto.go
package dto

type CompleteGameRequest struct {
	GameID      string `json:"game_id" validate:"required"`
	Score       int    `json:"score" validate:"gte=0"`
	TotalLevels int    `json:"total_levels" validate:"gte=1"`
}

type GameProgressResponse struct {
	GameID         string `json:"game_id"`
	GameTitle      string `json:"game_title"`
	Unlocked       bool   `json:"unlocked"`
	FullyCompleted bool   `json:"fully_completed"`
	ReplayUnlocked bool   `json:"replay_unlocked"`
}

type CompleteGameResponse struct {
	GameProgressResponse
	CoinsEarned int `json:"coins_earned"`
	CoinBalance int `json:"coin_balance"`
}

type ProgressMapResponse struct {
	Completion  map[string]bool `json:"completion"`
	CoinBalance int             `json:"coin_balance"`
}
