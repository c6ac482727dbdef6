// file: internals/features/parent/badges/controller/badge_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/model"
	service "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/service"
	gameModel "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/model"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

type BadgeController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewBadgeController(db *gorm.DB, hub *realtime.Hub) *BadgeController {
	return &BadgeController{DB: db, Hub: hub}
}

// errAlreadyCollected rolls the collect transaction back when a racing
// collect inserted the row first; the caller maps it to the idempotent
// already-owned response.
var errAlreadyCollected = errors.New("badge already collected")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

/*
	=========================================================
	  GET /api/parent/badge/:slug/status

=========================================================
*/
func (ctrl *BadgeController) Status(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	cfg, err := ctrl.findConfig(c.Params("slug"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	completion, err := ctrl.loadCompletionMap(userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load progress")
	}
	collected, err := ctrl.isCollected(ctrl.DB, userID, cfg.BadgeConfigSlug)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check badge")
	}

	return helper.Success(c, "OK", dto.BadgeStatusResponse{
		BadgeSlug:     cfg.BadgeConfigSlug,
		BadgeName:     cfg.BadgeConfigName,
		State:         service.Evaluate(cfg.BadgeConfigRequired, collected, completion),
		RequiredCount: len(cfg.BadgeConfigRequired),
		Prereqs:       service.Prereqs(cfg.BadgeConfigRequired, completion),
		CoinBonus:     cfg.BadgeConfigCoinBonus,
	})
}

/*
	=========================================================
	  POST /api/parent/badge/:slug/collect

=========================================================
*/
func (ctrl *BadgeController) Collect(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	cfg, err := ctrl.findConfig(c.Params("slug"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	alreadyOwned := false
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		collected, err := ctrl.isCollected(tx, userID, cfg.BadgeConfigSlug)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check badge")
		}
		completion, err := ctrl.loadCompletionMapTx(tx, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load progress")
		}

		// collection is set-once; a repeat call short-circuits here and
		// the earned broadcast below never fires a second time
		switch service.DecideCollect(cfg.BadgeConfigRequired, collected, completion) {
		case service.CollectAlreadyOwned:
			alreadyOwned = true
			return nil
		case service.CollectLocked:
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("Badge is locked: complete all %d required activities first", len(cfg.BadgeConfigRequired)))
		}

		row := model.CollectedBadge{
			CollectedBadgeUserID: userID,
			CollectedBadgeSlug:   cfg.BadgeConfigSlug,
		}
		if err := tx.Create(&row).Error; err != nil {
			// a racing collect can win the (user, slug) unique index
			// between the check above and this insert; the loser is an
			// idempotent repeat, not a failure
			if isUniqueViolation(err) {
				return errAlreadyCollected
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to collect badge")
		}

		if cfg.BadgeConfigCoinBonus > 0 {
			if err := creditWallet(tx, userID, cfg.BadgeConfigCoinBonus); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to credit bonus")
			}
		}

		// the badge's own synthetic game is marked completed so it is
		// no longer replayable
		progress := gameModel.GameProgress{
			GameProgressUserID:         userID,
			GameProgressGameID:         cfg.BadgeConfigGameID,
			GameProgressFullyCompleted: true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_progress_user_id"}, {Name: "game_progress_game_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"game_progress_fully_completed": true}),
		}).Create(&progress).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to register badge game")
		}
		return nil
	})
	if errors.Is(txErr, errAlreadyCollected) {
		alreadyOwned = true
		txErr = nil
	}
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	coinsEarned := 0
	if !alreadyOwned {
		coinsEarned = cfg.BadgeConfigCoinBonus
		ctrl.Hub.Publish(realtime.Event{
			Name: realtime.EvBadgeEarned,
			Payload: realtime.BadgeEarnedPayload{
				BadgeID:   cfg.BadgeConfigSlug,
				BadgeName: cfg.BadgeConfigName,
				Message:   fmt.Sprintf("You earned the %s badge!", cfg.BadgeConfigName),
			},
		}, realtime.UserRoom(userID.String()))
	}

	return helper.Success(c, "Badge collected", dto.CollectBadgeResponse{
		BadgeSlug:    cfg.BadgeConfigSlug,
		BadgeName:    cfg.BadgeConfigName,
		CoinsEarned:  coinsEarned,
		AlreadyOwned: alreadyOwned,
	})
}

/*
	=========================================================
	  GET /api/parent/badge/collected

=========================================================
*/
func (ctrl *BadgeController) Collected(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []struct {
		model.CollectedBadge
		BadgeConfigName string
	}
	if err := ctrl.DB.Model(&model.CollectedBadge{}).
		Select("collected_badges.*, badge_configs.badge_config_name").
		Joins("JOIN badge_configs ON badge_configs.badge_config_slug = collected_badges.collected_badge_slug").
		Where("collected_badge_user_id = ?", userID).
		Order("collected_badges.created_at").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load badges")
	}

	out := make([]dto.CollectedBadgeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CollectedBadgeResponse{
			BadgeSlug:   r.CollectedBadgeSlug,
			BadgeName:   r.BadgeConfigName,
			CollectedAt: r.CreatedAt,
		})
	}
	return helper.Success(c, "OK", out)
}

/* ========================= helpers ========================= */

func (ctrl *BadgeController) findConfig(rawSlug string) (*model.BadgeConfig, error) {
	slug := strings.TrimSpace(rawSlug)
	if slug == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "badge slug is required")
	}
	var cfg model.BadgeConfig
	if err := ctrl.DB.Where("badge_config_slug = ?", slug).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Badge not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badge")
	}
	return &cfg, nil
}

func (ctrl *BadgeController) isCollected(db *gorm.DB, userID uuid.UUID, slug string) (bool, error) {
	var n int64
	err := db.Model(&model.CollectedBadge{}).
		Where("collected_badge_user_id = ? AND collected_badge_slug = ?", userID, slug).
		Count(&n).Error
	return n > 0, err
}

func (ctrl *BadgeController) loadCompletionMap(userID uuid.UUID) (map[string]bool, error) {
	return ctrl.loadCompletionMapTx(ctrl.DB, userID)
}

func (ctrl *BadgeController) loadCompletionMapTx(db *gorm.DB, userID uuid.UUID) (map[string]bool, error) {
	var rows []gameModel.GameProgress
	if err := db.Where("game_progress_user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]bool, len(rows))
	for _, r := range rows {
		m[r.GameProgressGameID] = r.GameProgressFullyCompleted
	}
	return m, nil
}

func creditWallet(tx *gorm.DB, userID uuid.UUID, amount int) error {
	wallet := gameModel.CoinWallet{CoinWalletUserID: userID}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("coin_wallet_user_id = ?", userID).
		FirstOrCreate(&wallet).Error; err != nil {
		return err
	}
	return tx.Model(&wallet).
		Update("coin_wallet_balance", gorm.Expr("coin_wallet_balance + ?", amount)).Error
}
