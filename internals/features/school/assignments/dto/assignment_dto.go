// file: internals/features/school/assignments/dto/assignment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/model"
	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/service"
)

/* ===================== REQUESTS ===================== */

type QuestionRequest struct {
	QuestionType          string         `json:"question_type" validate:"required"`
	QuestionText          string         `json:"question_text" validate:"required"`
	QuestionOptions       []string       `json:"question_options" validate:"omitempty"`
	QuestionCorrectAnswer datatypes.JSON `json:"question_correct_answer" validate:"omitempty"`
	QuestionPoints        int            `json:"question_points" validate:"gte=0"`
}

type CreateAssignmentRequest struct {
	AssignmentTitle       string            `json:"assignment_title" validate:"required"`
	AssignmentDescription string            `json:"assignment_description" validate:"required"`
	AssignmentSubject     string            `json:"assignment_subject" validate:"required"`
	AssignmentType        string            `json:"assignment_type" validate:"required,oneof=homework quiz test classwork project"`
	AssignmentDueDate     string            `json:"assignment_due_date" validate:"required"` // YYYY-MM-DD
	AssignmentAssignedTo  []uuid.UUID       `json:"assignment_assigned_to" validate:"required,min=1,dive,uuid"`
	AssignmentIsVirtual   bool              `json:"assignment_is_virtual"`
	AssignmentTasks       []string          `json:"assignment_tasks" validate:"omitempty"`
	Questions             []QuestionRequest `json:"questions" validate:"omitempty,dive"`
}

// ToValidationInput bridges the request to the rule layer.
func (r CreateAssignmentRequest) ToValidationInput() service.AssignmentInput {
	questions := make([]service.QuestionInput, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, service.QuestionInput{
			Type:    q.QuestionType,
			Text:    q.QuestionText,
			Options: q.QuestionOptions,
			Points:  q.QuestionPoints,
		})
	}
	assignedTo := make([]string, 0, len(r.AssignmentAssignedTo))
	for _, id := range r.AssignmentAssignedTo {
		assignedTo = append(assignedTo, id.String())
	}
	return service.AssignmentInput{
		Title:       r.AssignmentTitle,
		Description: r.AssignmentDescription,
		Subject:     r.AssignmentSubject,
		Type:        r.AssignmentType,
		DueDate:     r.AssignmentDueDate,
		AssignedTo:  assignedTo,
		IsVirtual:   r.AssignmentIsVirtual,
		Tasks:       r.AssignmentTasks,
		Questions:   questions,
	}
}

// ToModel, controller supplies the scope from the token.
func (r CreateAssignmentRequest) ToModel(schoolID, teacherID uuid.UUID, dueDate time.Time) *model.Assignment {
	assignedTo := make(pq.StringArray, 0, len(r.AssignmentAssignedTo))
	for _, id := range r.AssignmentAssignedTo {
		assignedTo = append(assignedTo, id.String())
	}
	m := &model.Assignment{
		AssignmentSchoolID:    schoolID,
		AssignmentTeacherID:   teacherID,
		AssignmentTitle:       strings.TrimSpace(r.AssignmentTitle),
		AssignmentDescription: strings.TrimSpace(r.AssignmentDescription),
		AssignmentSubject:     strings.TrimSpace(r.AssignmentSubject),
		AssignmentType:        r.AssignmentType,
		AssignmentDueDate:     dueDate,
		AssignmentAssignedTo:  assignedTo,
		AssignmentIsVirtual:   r.AssignmentIsVirtual,
		AssignmentTasks:       pq.StringArray(r.AssignmentTasks),
	}
	for i, q := range r.Questions {
		m.Questions = append(m.Questions, model.Question{
			QuestionType:          q.QuestionType,
			QuestionText:          strings.TrimSpace(q.QuestionText),
			QuestionOptions:       optionsJSON(q.QuestionOptions),
			QuestionCorrectAnswer: q.QuestionCorrectAnswer,
			QuestionPoints:        q.QuestionPoints,
			QuestionOrder:         i,
		})
	}
	return m
}

func optionsJSON(options []string) datatypes.JSON {
	if len(options) == 0 {
		return nil
	}
	raw, err := sonic.Marshal(options)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

type SubmitAssignmentRequest struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required,uuid"`
	Score       float64   `json:"score" validate:"gte=0"`
	DurationSec int       `json:"duration_sec" validate:"gte=0"`
}

/* ===================== RESPONSES ===================== */

type AssignmentResponse struct {
	model.Assignment
	AssignmentTotalPoints int `json:"assignment_total_points"`
}

// NewAssignmentResponse attaches the recomputed total.
func NewAssignmentResponse(a model.Assignment) AssignmentResponse {
	return AssignmentResponse{
		Assignment:            a,
		AssignmentTotalPoints: service.TotalPoints(a.Questions),
	}
}

type TypeStat struct {
	AssignmentType string `json:"assignment_type"`
	Count          int64  `json:"count"`
}
