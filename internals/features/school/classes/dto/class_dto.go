// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"github.com/google/uuid"

	studentModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName    string `json:"class_name" validate:"required,min=2,max=120"`
	ClassGrade   string `json:"class_grade" validate:"required,max=20"`
	ClassSection string `json:"class_section" validate:"omitempty,max=20"`
	ClassSubject string `json:"class_subject" validate:"omitempty,max=80"`
}

type AssignStudentsRequest struct {
	ClassID    uuid.UUID   `json:"class_id" validate:"required,uuid"`
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,uuid"`
}

/* ===================== RESPONSES ===================== */

type ClassResponse struct {
	ClassID      uuid.UUID `json:"class_id"`
	ClassName    string    `json:"class_name"`
	ClassGrade   string    `json:"class_grade"`
	ClassSection string    `json:"class_section"`
	ClassSubject string    `json:"class_subject"`
	StudentCount int64     `json:"student_count"`
}

type ClassStudentsResponse struct {
	ClassID  uuid.UUID              `json:"class_id"`
	Students []studentModel.Student `json:"students"`
	Meta     helper.Meta            `json:"meta"`
}
