package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Class struct {
	ClassID        uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`
	ClassSchoolID  uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;index" json:"class_school_id"`
	ClassTeacherID uuid.UUID `gorm:"column:class_teacher_id;type:uuid;not null;index" json:"class_teacher_id"`
	ClassName      string    `gorm:"column:class_name;size:120;not null" json:"class_name"`
	ClassGrade     string    `gorm:"column:class_grade;size:20;not null" json:"class_grade"`
	ClassSection   string    `gorm:"column:class_section;size:20" json:"class_section"`
	ClassSubject   string    `gorm:"column:class_subject;size:80" json:"class_subject"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassStudent links a student to a class. Removal is recorded, not
// deleted, so roster history survives.
type ClassStudent struct {
	ClassStudentID        uuid.UUID  `gorm:"column:class_student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_student_id"`
	ClassStudentClassID   uuid.UUID  `gorm:"column:class_student_class_id;type:uuid;not null;index:idx_class_student,unique,where:class_student_removed_at IS NULL" json:"class_student_class_id"`
	ClassStudentStudentID uuid.UUID  `gorm:"column:class_student_student_id;type:uuid;not null;index:idx_class_student,unique,where:class_student_removed_at IS NULL" json:"class_student_student_id"`
	ClassStudentRemovedAt *time.Time `gorm:"column:class_student_removed_at" json:"class_student_removed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}
