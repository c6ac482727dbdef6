package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	InviteKindStudent      = "student"
	InviteKindRegistration = "registration"
)

// Invite backs generate-invite / generate-registration-link / send-invites.
// Single-use; expired rows are reaped by the scheduler.
type Invite struct {
	InviteID        uuid.UUID  `gorm:"column:invite_id;type:uuid;default:gen_random_uuid();primaryKey" json:"invite_id"`
	InviteSchoolID  uuid.UUID  `gorm:"column:invite_school_id;type:uuid;not null;index" json:"invite_school_id"`
	InviteCreatedBy uuid.UUID  `gorm:"column:invite_created_by;type:uuid;not null" json:"invite_created_by"`
	InviteKind      string     `gorm:"column:invite_kind;size:20;not null" json:"invite_kind"`
	InviteEmail     *string    `gorm:"column:invite_email;size:255" json:"invite_email,omitempty"`
	InviteToken     string     `gorm:"column:invite_token;size:64;uniqueIndex;not null" json:"invite_token"`
	InviteExpiresAt time.Time  `gorm:"column:invite_expires_at;not null" json:"invite_expires_at"`
	InviteUsedAt    *time.Time `gorm:"column:invite_used_at" json:"invite_used_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Invite) TableName() string {
	return "invites"
}
