package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "github.com/mardavsj/wisestudent-sub021/internals/features/school/classes/controller"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

func ClassTeacherRoutes(router fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := classController.NewClassController(db, hub)

	// 🏫 Class / roster routes (teacher only)
	router.Get("/classes", ctrl.ListClasses)
	router.Post("/classes", ctrl.CreateClass)
	router.Get("/class/:id/students", ctrl.ListClassStudents)
	router.Get("/all-students", ctrl.ListAllStudents)
	router.Post("/assign-students", ctrl.AssignStudents)
	router.Delete("/class/:id/student/:student_id", ctrl.RemoveStudent)
}
