package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	StudentID        uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentSchoolID  uuid.UUID `gorm:"column:student_school_id;type:uuid;not null;uniqueIndex:idx_student_school_reg" json:"student_school_id"`
	StudentRegNo     string    `gorm:"column:student_reg_no;size:40;not null;uniqueIndex:idx_student_school_reg" json:"student_reg_no"`
	StudentFirstName string    `gorm:"column:student_first_name;size:80;not null" json:"student_first_name"`
	StudentLastName  string    `gorm:"column:student_last_name;size:80;not null" json:"student_last_name"`
	StudentDOB       string    `gorm:"column:student_dob;size:20" json:"student_dob"`
	StudentPhone     string    `gorm:"column:student_phone;size:30" json:"student_phone"`
	StudentEmail     string    `gorm:"column:student_email;size:255" json:"student_email"`
	StudentGrade     string    `gorm:"column:student_grade;size:20" json:"student_grade"`
	StudentSection   string    `gorm:"column:student_section;size:20" json:"student_section"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}
