package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment types
const (
	TypeHomework  = "homework"
	TypeQuiz      = "quiz"
	TypeTest      = "test"
	TypeClasswork = "classwork"
	TypeProject   = "project"
)

// Question types
const (
	QMultipleChoice   = "multiple_choice"
	QTrueFalse        = "true_false"
	QShortAnswer      = "short_answer"
	QEssay            = "essay"
	QFillInBlank      = "fill_in_blank"
	QMatching         = "matching"
	QProblemSolving   = "problem_solving"
	QWordProblem      = "word_problem"
	QResearchQuestion = "research_question"
	QPresentation     = "presentation"
	QReflection       = "reflection"
)

// Assignment total points are never stored: they are recomputed from the
// question rows on every read.
type Assignment struct {
	AssignmentID          uuid.UUID      `gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_id"`
	AssignmentSchoolID    uuid.UUID      `gorm:"column:assignment_school_id;type:uuid;not null;index" json:"assignment_school_id"`
	AssignmentTeacherID   uuid.UUID      `gorm:"column:assignment_teacher_id;type:uuid;not null;index" json:"assignment_teacher_id"`
	AssignmentTitle       string         `gorm:"column:assignment_title;size:200;not null" json:"assignment_title"`
	AssignmentDescription string         `gorm:"column:assignment_description;type:text;not null" json:"assignment_description"`
	AssignmentSubject     string         `gorm:"column:assignment_subject;size:80;not null" json:"assignment_subject"`
	AssignmentType        string         `gorm:"column:assignment_type;size:20;not null" json:"assignment_type"`
	AssignmentDueDate     time.Time      `gorm:"column:assignment_due_date;not null" json:"assignment_due_date"`
	AssignmentAssignedTo  pq.StringArray `gorm:"column:assignment_assigned_to;type:text[];not null" json:"assignment_assigned_to"`
	AssignmentIsVirtual   bool           `gorm:"column:assignment_is_virtual;not null;default:false" json:"assignment_is_virtual"`
	AssignmentTasks       pq.StringArray `gorm:"column:assignment_tasks;type:text[]" json:"assignment_tasks"`

	Questions []Question `gorm:"foreignKey:QuestionAssignmentID;references:AssignmentID" json:"questions,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type Question struct {
	QuestionID            uuid.UUID      `gorm:"column:question_id;type:uuid;default:gen_random_uuid();primaryKey" json:"question_id"`
	QuestionAssignmentID  uuid.UUID      `gorm:"column:question_assignment_id;type:uuid;not null;index" json:"question_assignment_id"`
	QuestionType          string         `gorm:"column:question_type;size:30;not null" json:"question_type"`
	QuestionText          string         `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionOptions       datatypes.JSON `gorm:"column:question_options;type:jsonb" json:"question_options,omitempty"`
	QuestionCorrectAnswer datatypes.JSON `gorm:"column:question_correct_answer;type:jsonb" json:"question_correct_answer,omitempty"`
	QuestionPoints        int            `gorm:"column:question_points;not null;default:0" json:"question_points"`
	QuestionOrder         int            `gorm:"column:question_order;not null;default:0" json:"question_order"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string {
	return "assignment_questions"
}

// AssignmentHide backs "delete for me": the row disappears from that
// teacher's lists while staying visible to everyone else.
type AssignmentHide struct {
	AssignmentHideID           uuid.UUID `gorm:"column:assignment_hide_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_hide_id"`
	AssignmentHideAssignmentID uuid.UUID `gorm:"column:assignment_hide_assignment_id;type:uuid;not null;uniqueIndex:idx_assignment_hide" json:"assignment_hide_assignment_id"`
	AssignmentHideUserID       uuid.UUID `gorm:"column:assignment_hide_user_id;type:uuid;not null;uniqueIndex:idx_assignment_hide" json:"assignment_hide_user_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AssignmentHide) TableName() string {
	return "assignment_hides"
}

type Submission struct {
	SubmissionID           uuid.UUID `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"column:submission_assignment_id;type:uuid;not null;index" json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `gorm:"column:submission_student_id;type:uuid;not null;index" json:"submission_student_id"`
	SubmissionScore        float64   `gorm:"column:submission_score;not null;default:0" json:"submission_score"`
	SubmissionMaxPoints    int       `gorm:"column:submission_max_points;not null;default:0" json:"submission_max_points"`
	SubmissionDurationSec  int       `gorm:"column:submission_duration_sec;not null;default:0" json:"submission_duration_sec"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Submission) TableName() string {
	return "assignment_submissions"
}
