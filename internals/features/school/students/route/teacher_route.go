package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/controller"
	studentService "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/service"
	"github.com/mardavsj/wisestudent-sub021/internals/middlewares"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

func StudentTeacherRoutes(router fiber.Router, db *gorm.DB, hub *realtime.Hub, email *studentService.InviteEmailService) {
	ctrl := studentController.NewStudentController(db, hub, email)

	// ✉️ Invites
	router.Post("/generate-invite", ctrl.GenerateInvite)
	router.Post("/generate-registration-link", ctrl.GenerateRegistrationLink)
	router.Post("/send-invites", ctrl.SendInvites)

	// 📄 Bulk CSV roster import
	router.Post("/bulk-upload-students", middlewares.UploadRateLimiter(), ctrl.BulkUploadStudents)
}
