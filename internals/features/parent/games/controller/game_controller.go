// file: internals/features/parent/games/controller/game_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/model"
	service "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/service"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
)

type GameController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewGameController(db *gorm.DB) *GameController {
	return &GameController{DB: db, Validator: validator.New()}
}

/*
	=========================================================
	  GET /api/parent/game/progress

=========================================================
*/
func (ctrl *GameController) ProgressMap(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	completion, err := loadCompletionMap(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load progress")
	}
	wallet, err := getOrCreateWallet(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load wallet")
	}

	return helper.Success(c, "OK", dto.ProgressMapResponse{
		Completion:  completion,
		CoinBalance: wallet.CoinWalletBalance,
	})
}

/*
	=========================================================
	  GET /api/parent/game/progress/:game_id

=========================================================
*/
func (ctrl *GameController) Progress(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	game, err := findGame(ctrl.DB, c.Params("game_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	completion, err := loadCompletionMap(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load progress")
	}

	var progress model.GameProgress
	_ = ctrl.DB.Where("game_progress_user_id = ? AND game_progress_game_id = ?", userID, game.GameID).
		First(&progress).Error // zero value when no row yet

	return helper.Success(c, "OK", dto.GameProgressResponse{
		GameID:         game.GameID,
		GameTitle:      game.GameTitle,
		Unlocked:       service.IsUnlocked(*game, completion),
		FullyCompleted: progress.GameProgressFullyCompleted,
		ReplayUnlocked: progress.GameProgressReplayUnlocked,
	})
}

/*
	=========================================================
	  POST /api/parent/game/complete

=========================================================
*/
func (ctrl *GameController) Complete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CompleteGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	game, err := findGame(ctrl.DB, req.GameID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	completion, err := loadCompletionMap(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load progress")
	}
	if !service.IsUnlocked(*game, completion) {
		return helper.Error(c, fiber.StatusForbidden, "Game is locked; finish the previous activity first")
	}

	fully := service.FullyCompleted(req.Score, req.TotalLevels)
	coinsEarned := 0
	var progress model.GameProgress

	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("game_progress_user_id = ? AND game_progress_game_id = ?", userID, game.GameID).
			First(&progress).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load progress")
			}
			progress = model.GameProgress{
				GameProgressUserID: userID,
				GameProgressGameID: game.GameID,
			}
		}

		firstFull := fully && !progress.GameProgressFullyCompleted
		if fully {
			progress.GameProgressFullyCompleted = true
		}
		if err := tx.Save(&progress).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save progress")
		}

		// coins only on the first full completion; replays earn nothing
		if firstFull && game.GameCalmCoins > 0 {
			if err := creditWallet(tx, userID, game.GameCalmCoins); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to credit coins")
			}
			coinsEarned = game.GameCalmCoins
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	wallet, err := getOrCreateWallet(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load wallet")
	}

	return helper.Success(c, "Progress saved", dto.CompleteGameResponse{
		GameProgressResponse: dto.GameProgressResponse{
			GameID:         game.GameID,
			GameTitle:      game.GameTitle,
			Unlocked:       true,
			FullyCompleted: progress.GameProgressFullyCompleted,
			ReplayUnlocked: progress.GameProgressReplayUnlocked,
		},
		CoinsEarned: coinsEarned,
		CoinBalance: wallet.CoinWalletBalance,
	})
}

/*
	=========================================================
	  POST /api/parent/game/unlock-replay/:game_id

=========================================================
*/
func (ctrl *GameController) UnlockReplay(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	game, err := findGame(ctrl.DB, c.Params("game_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var progress model.GameProgress
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("game_progress_user_id = ? AND game_progress_game_id = ?", userID, game.GameID).
			First(&progress).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusConflict, "Game is not fully completed yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load progress")
		}
		if !progress.GameProgressFullyCompleted {
			return fiber.NewError(fiber.StatusConflict, "Game is not fully completed yet")
		}
		if progress.GameProgressReplayUnlocked {
			// already paid; don't charge twice
			return nil
		}

		if err := debitWallet(tx, userID, model.ReplayUnlockCost); err != nil {
			return err
		}
		progress.GameProgressReplayUnlocked = true
		if err := tx.Save(&progress).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save progress")
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	wallet, err := getOrCreateWallet(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load wallet")
	}

	return helper.Success(c, "Replay unlocked", fiber.Map{
		"game_id":         game.GameID,
		"replay_unlocked": true,
		"coin_balance":    wallet.CoinWalletBalance,
	})
}

/* ========================= shared helpers ========================= */

func findGame(db *gorm.DB, rawID string) (*model.Game, error) {
	id := strings.TrimSpace(rawID)
	if id == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "game id is required")
	}
	var game model.Game
	if err := db.Where("game_id = ?", id).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Game not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load game")
	}
	return &game, nil
}

// loadCompletionMap builds the full-completion map consulted by both
// the sequential unlock and the badge evaluator.
func loadCompletionMap(db *gorm.DB, userID uuid.UUID) (map[string]bool, error) {
	var rows []model.GameProgress
	if err := db.Where("game_progress_user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]bool, len(rows))
	for _, r := range rows {
		m[r.GameProgressGameID] = r.GameProgressFullyCompleted
	}
	return m, nil
}

func getOrCreateWallet(db *gorm.DB, userID uuid.UUID) (*model.CoinWallet, error) {
	wallet := model.CoinWallet{CoinWalletUserID: userID}
	if err := db.Where("coin_wallet_user_id = ?", userID).FirstOrCreate(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func creditWallet(tx *gorm.DB, userID uuid.UUID, amount int) error {
	wallet := model.CoinWallet{CoinWalletUserID: userID}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("coin_wallet_user_id = ?", userID).
		FirstOrCreate(&wallet).Error; err != nil {
		return err
	}
	return tx.Model(&wallet).
		Update("coin_wallet_balance", gorm.Expr("coin_wallet_balance + ?", amount)).Error
}

func debitWallet(tx *gorm.DB, userID uuid.UUID, amount int) error {
	wallet := model.CoinWallet{CoinWalletUserID: userID}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("coin_wallet_user_id = ?", userID).
		FirstOrCreate(&wallet).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load wallet")
	}
	if wallet.CoinWalletBalance < amount {
		return fiber.NewError(fiber.StatusPaymentRequired,
			fmt.Sprintf("Not enough CalmCoins: need %d, have %d", amount, wallet.CoinWalletBalance))
	}
	return tx.Model(&wallet).
		Update("coin_wallet_balance", gorm.Expr("coin_wallet_balance - ?", amount)).Error
}
