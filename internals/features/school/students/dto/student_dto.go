// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/service"
)

/* ===================== REQUESTS ===================== */

type GenerateInviteRequest struct {
	InviteEmail *string `json:"invite_email" validate:"omitempty,email"`
}

type SendInvitesRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,max=100,dive,email"`
}

/* ===================== RESPONSES ===================== */

type InviteResponse struct {
	InviteToken string    `json:"invite_token"`
	InviteLink  string    `json:"invite_link"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type SendInvitesResponse struct {
	Sent   []string `json:"sent"`
	Failed []string `json:"failed,omitempty"`
}

type BulkUploadResponse struct {
	Preview   []service.RosterRow `json:"preview"`
	TotalRows int                 `json:"total_rows"`
	Imported  int                 `json:"imported"`
	DryRun    bool                `json:"dry_run"`
}
