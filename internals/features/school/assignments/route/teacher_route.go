// file: internals/features/school/assignments/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentController "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/controller"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

// AssignmentTeacherRoutes mounts the assignment builder endpoints.
// Caller is expected to have applied auth + role middleware already.
func AssignmentTeacherRoutes(router fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := assignmentController.NewAssignmentController(db, hub)

	router.Get("/assignments", ctrl.ListAssignments)
	router.Post("/assignments", ctrl.CreateAssignment)
	router.Put("/assignments/:id", ctrl.UpdateAssignment)
	router.Delete("/assignments/:id/for-me", ctrl.DeleteForMe)
	router.Delete("/assignments/:id/for-everyone", ctrl.DeleteForEveryone)
	router.Get("/assignment-type-stats", ctrl.TypeStats)
	router.Post("/assignments/:id/submissions", ctrl.SubmitAssignment)
}
