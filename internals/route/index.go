// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mardavsj/wisestudent-sub021/internals/constants"
	badgeRoute "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/route"
	gameRoute "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/route"
	analyticsRoute "github.com/mardavsj/wisestudent-sub021/internals/features/school/analytics/route"
	assignmentRoute "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/route"
	classRoute "github.com/mardavsj/wisestudent-sub021/internals/features/school/classes/route"
	studentRoute "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/route"
	studentService "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/service"
	authRoute "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/route"
	authMiddleware "github.com/mardavsj/wisestudent-sub021/internals/middlewares/auth"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

// SetupRoutes mounts every route group on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub, email *studentService.InviteEmailService) {
	// public
	authRoute.AuthRoutes(app, db)

	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// live updates, open to every known role
	ws := api.Group("/",
		authMiddleware.OnlyRoles("Only signed-in school or parent accounts may open a live connection.", constants.AllRoles...))
	realtime.WebsocketRoute(ws, hub)

	// 🏫 teacher dashboard surface
	teacher := api.Group("/school/teacher",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("the teacher dashboard"), constants.TeachingRoles...))
	classRoute.ClassTeacherRoutes(teacher, db, hub)
	studentRoute.StudentTeacherRoutes(teacher, db, hub, email)
	assignmentRoute.AssignmentTeacherRoutes(teacher, db, hub)
	analyticsRoute.AnalyticsTeacherRoutes(teacher, db)

	// 👪 parent education surface
	parent := api.Group("/parent",
		authMiddleware.OnlyRoles(constants.RoleErrorParent("the parent education area"), constants.ParentRoles...))
	gameRoute.GameParentRoutes(parent, db)
	badgeRoute.BadgeParentRoutes(parent, db, hub)
}
