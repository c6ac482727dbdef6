package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName     string     `gorm:"column:user_name;size:100;not null" json:"user_name"`
	UserEmail    string     `gorm:"column:user_email;size:255;uniqueIndex;not null" json:"user_email"`
	UserPassword string     `gorm:"column:user_password;size:255;not null" json:"-"`
	UserRole     string     `gorm:"column:user_role;size:20;not null;default:'parent'" json:"user_role"`
	UserSchoolID *uuid.UUID `gorm:"column:user_school_id;type:uuid" json:"user_school_id,omitempty"`
	UserIsActive bool       `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.UserPassword = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(plain)) == nil
}
