// file: internals/features/parent/badges/route/parent_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	badgeController "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/controller"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

func BadgeParentRoutes(router fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := badgeController.NewBadgeController(db, hub)

	// "/badge/collected" must register before the ":slug" routes
	router.Get("/badge/collected", ctrl.Collected)
	router.Get("/badge/:slug/status", ctrl.Status)
	router.Post("/badge/:slug/collect", ctrl.Collect)
}
