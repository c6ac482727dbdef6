// file: internals/features/school/analytics/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsController "github.com/mardavsj/wisestudent-sub021/internals/features/school/analytics/controller"
)

func AnalyticsTeacherRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := analyticsController.NewAnalyticsController(db)

	router.Get("/class-mastery", ctrl.ClassMastery)
	router.Get("/students-at-risk", ctrl.StudentsAtRisk)
	router.Get("/session-engagement", ctrl.SessionEngagement)
	router.Get("/leaderboard", ctrl.Leaderboard)
	router.Get("/analytics/export", ctrl.Export)
}
