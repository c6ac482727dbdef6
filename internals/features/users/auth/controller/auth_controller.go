// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/mardavsj/wisestudent-sub021/internals/configs"
	studentModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	dto "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/model"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var count int64
	if err := ctrl.DB.Model(&model.User{}).Where("user_email = ?", email).Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "A user with this email already exists")
	}

	user := model.User{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    email,
		UserRole:     req.UserRole,
		UserSchoolID: req.UserSchoolID,
		UserIsActive: true,
	}
	if err := user.SetPassword(req.UserPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	// Registration links carry an invite token; consume it so the school
	// scope comes from the invite instead of the request body.
	if req.InviteToken != nil && strings.TrimSpace(*req.InviteToken) != "" {
		var invite studentModel.Invite
		err := ctrl.DB.
			Where("invite_token = ? AND invite_used_at IS NULL AND invite_expires_at > NOW()", strings.TrimSpace(*req.InviteToken)).
			First(&invite).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusBadRequest, "Invite link is invalid or has expired")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to check invite")
		}
		user.UserSchoolID = &invite.InviteSchoolID
		now := time.Now()
		invite.InviteUsedAt = &now
		if err := ctrl.DB.Save(&invite).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to consume invite")
		}
	}

	if err := ctrl.DB.Create(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Account created", dto.UserResponse{
		UserID:       user.UserID,
		UserName:     user.UserName,
		UserEmail:    user.UserEmail,
		UserRole:     user.UserRole,
		UserSchoolID: user.UserSchoolID,
	})
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.User
	err := ctrl.DB.
		Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.UserEmail))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Incorrect email or password")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !user.UserIsActive {
		return helper.Error(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !user.CheckPassword(req.UserPassword) {
		return helper.Error(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := signAccessToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	return helper.Success(c, "Login ok", dto.LoginResponse{
		AccessToken: token,
		User: dto.UserResponse{
			UserID:       user.UserID,
			UserName:     user.UserName,
			UserEmail:    user.UserEmail,
			UserRole:     user.UserRole,
			UserSchoolID: user.UserSchoolID,
		},
	})
}

// POST /api/auth/logout — blacklist the current token until expiry
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.Error(c, fiber.StatusBadRequest, "No token to revoke")
	}

	entry := model.TokenBlacklist{
		Token:     raw,
		ExpiredAt: time.Now().Add(accessTokenTTL),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}

	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: time.Now().Add(-time.Hour), HTTPOnly: true})
	return helper.Success(c, "Logged out", nil)
}

func signAccessToken(user model.User) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"exp":       time.Now().Add(accessTokenTTL).Unix(),
	}
	if user.UserSchoolID != nil {
		claims["school_id"] = user.UserSchoolID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
