// file: internals/features/parent/games/route/parent_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gameController "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/controller"
)

func GameParentRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := gameController.NewGameController(db)

	router.Get("/game/progress", ctrl.ProgressMap)
	router.Get("/game/progress/:game_id", ctrl.Progress)
	router.Post("/game/complete", ctrl.Complete)
	router.Post("/game/unlock-replay/:game_id", ctrl.UnlockReplay)
}
