package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/controller"
	"github.com/mardavsj/wisestudent-sub021/internals/middlewares"
	authMiddleware "github.com/mardavsj/wisestudent-sub021/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	authGroup.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	authGroup.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
}
