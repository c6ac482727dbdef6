// file: internals/features/school/assignments/service/validation.go
package service

import (
	"fmt"
	"strings"

	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/model"
)

// allowedQuestionTypes restricts which question types each assignment type
// may carry; the builder UI offers the same sets.
var allowedQuestionTypes = map[string][]string{
	model.TypeQuiz: {model.QMultipleChoice, model.QTrueFalse},
	model.TypeTest: {
		model.QMultipleChoice, model.QTrueFalse, model.QShortAnswer,
		model.QFillInBlank, model.QMatching,
	},
	model.TypeHomework: {
		model.QProblemSolving, model.QWordProblem, model.QShortAnswer, model.QEssay,
	},
	model.TypeClasswork: {
		model.QMultipleChoice, model.QTrueFalse, model.QShortAnswer, model.QEssay,
		model.QFillInBlank, model.QMatching, model.QProblemSolving, model.QWordProblem,
	},
	model.TypeProject: {model.QResearchQuestion, model.QPresentation, model.QReflection},
}

// AllowedQuestionTypes returns the question types an assignment type may
// use, nil for an unknown assignment type.
func AllowedQuestionTypes(assignmentType string) []string {
	return allowedQuestionTypes[assignmentType]
}

func questionTypeAllowed(assignmentType, questionType string) bool {
	for _, qt := range allowedQuestionTypes[assignmentType] {
		if qt == questionType {
			return true
		}
	}
	return false
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type QuestionInput struct {
	Type    string
	Text    string
	Options []string
	Points  int
}

type AssignmentInput struct {
	Title       string
	Description string
	Subject     string
	Type        string
	DueDate     string
	AssignedTo  []string
	IsVirtual   bool
	Tasks       []string
	Questions   []QuestionInput
}

// Validate applies the submission rules. A non-empty result means the
// assignment must be rejected before any write or event fires.
func Validate(in AssignmentInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Error: "Title is required"})
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Error: "Description is required"})
	}
	if strings.TrimSpace(in.Subject) == "" {
		errs = append(errs, FieldError{Field: "subject", Error: "Subject is required"})
	}
	if strings.TrimSpace(in.DueDate) == "" {
		errs = append(errs, FieldError{Field: "due_date", Error: "Due date is required"})
	}
	if len(in.AssignedTo) == 0 {
		errs = append(errs, FieldError{Field: "assigned_to", Error: "At least one class must be assigned"})
	}

	if _, ok := allowedQuestionTypes[in.Type]; !ok {
		errs = append(errs, FieldError{Field: "type", Error: "Unknown assignment type: " + in.Type})
		return errs
	}

	switch in.Type {
	case model.TypeQuiz, model.TypeTest:
		if len(in.Questions) == 0 {
			errs = append(errs, FieldError{Field: "questions", Error: "A " + in.Type + " needs at least one question"})
		}
	case model.TypeProject:
		if in.IsVirtual {
			if len(in.Tasks) == 0 {
				errs = append(errs, FieldError{Field: "tasks", Error: "A virtual project needs at least one task"})
			}
			for i, task := range in.Tasks {
				if strings.TrimSpace(task) == "" {
					errs = append(errs, FieldError{
						Field: fmt.Sprintf("tasks[%d]", i),
						Error: "Task description must not be empty",
					})
				}
			}
		}
	}

	for i, q := range in.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if !questionTypeAllowed(in.Type, q.Type) {
			errs = append(errs, FieldError{
				Field: field + ".type",
				Error: "Question type " + q.Type + " is not allowed for " + in.Type,
			})
		}
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, FieldError{Field: field + ".question", Error: "Question text is required"})
		}
		if q.Points < 0 {
			errs = append(errs, FieldError{Field: field + ".points", Error: "Points must not be negative"})
		}
		if q.Type == model.QMultipleChoice && len(q.Options) < 2 {
			errs = append(errs, FieldError{Field: field + ".options", Error: "Multiple choice needs at least two options"})
		}
	}

	return errs
}

// TotalPoints recomputes the assignment total from its questions. No value
// is ever stored, so adds/edits/deletes can never drift.
func TotalPoints(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		total += q.QuestionPoints
	}
	return total
}
