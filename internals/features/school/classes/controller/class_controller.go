// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/mardavsj/wisestudent-sub021/internals/features/school/classes/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/classes/model"
	studentModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

type ClassController struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB, hub *realtime.Hub) *ClassController {
	return &ClassController{
		DB:        db,
		Hub:       hub,
		Validator: validator.New(),
	}
}

/*
	=========================================================
	  GET /api/school/teacher/classes

=========================================================
*/
func (ctrl *ClassController) ListClasses(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var classes []model.Class
	if err := ctrl.DB.
		Where("class_school_id = ? AND class_teacher_id = ?", schoolID, teacherID).
		Order("class_grade, class_section, class_name").
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load classes")
	}

	out := make([]dto.ClassResponse, 0, len(classes))
	for _, cl := range classes {
		var count int64
		if err := ctrl.DB.Model(&model.ClassStudent{}).
			Where("class_student_class_id = ? AND class_student_removed_at IS NULL", cl.ClassID).
			Count(&count).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
		}
		out = append(out, dto.ClassResponse{
			ClassID:      cl.ClassID,
			ClassName:    cl.ClassName,
			ClassGrade:   cl.ClassGrade,
			ClassSection: cl.ClassSection,
			ClassSubject: cl.ClassSubject,
			StudentCount: count,
		})
	}
	return helper.Success(c, "OK", out)
}

/*
	=========================================================
	  POST /api/school/teacher/classes

=========================================================
*/
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	class := model.Class{
		ClassSchoolID:  schoolID,
		ClassTeacherID: teacherID,
		ClassName:      strings.TrimSpace(req.ClassName),
		ClassGrade:     strings.TrimSpace(req.ClassGrade),
		ClassSection:   strings.TrimSpace(req.ClassSection),
		ClassSubject:   strings.TrimSpace(req.ClassSubject),
	}
	if err := ctrl.DB.Create(&class).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Class created", class)
}

/*
	=========================================================
	  GET /api/school/teacher/class/:id/students

=========================================================
*/
func (ctrl *ClassController) ListClassStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "class id is not valid")
	}

	class, err := ctrl.findOwnClass(classID, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "last_name", "asc", helper.DefaultOpts)

	base := ctrl.DB.Model(&studentModel.Student{}).
		Joins("JOIN class_students cs ON cs.class_student_student_id = students.student_id").
		Where("cs.class_student_class_id = ? AND cs.class_student_removed_at IS NULL", class.ClassID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count class roster")
	}

	var students []studentModel.Student
	if err := base.
		Order("students.student_last_name, students.student_first_name").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load class roster")
	}

	return helper.Success(c, "OK", dto.ClassStudentsResponse{
		ClassID:  class.ClassID,
		Students: students,
		Meta:     helper.BuildMeta(total, p),
	})
}

/*
	=========================================================
	  GET /api/school/teacher/all-students?search=&grade=&section=

=========================================================
*/
func (ctrl *ClassController) ListAllStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "last_name", "asc", helper.TeacherOpts)
	allowedSort := map[string]string{
		"last_name":  "student_last_name",
		"first_name": "student_first_name",
		"reg_no":     "student_reg_no",
		"grade":      "student_grade",
		"created_at": "created_at",
	}
	orderClause, err := p.SafeOrderClause(allowedSort, "last_name")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "sort_by is not valid")
	}
	orderExpr := strings.TrimPrefix(orderClause, "ORDER BY ")

	q := ctrl.DB.Model(&studentModel.Student{}).Where("student_school_id = ?", schoolID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(student_first_name) LIKE ? OR LOWER(student_last_name) LIKE ? OR LOWER(student_email) LIKE ? OR LOWER(student_reg_no) LIKE ?",
			like, like, like, like,
		)
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		q = q.Where("student_grade = ?", grade)
	}
	if section := strings.TrimSpace(c.Query("section")); section != "" {
		q = q.Where("student_section = ?", section)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []studentModel.Student
	if err := q.Order(orderExpr).Limit(p.Limit()).Offset(p.Offset()).Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	return helper.Success(c, "OK", fiber.Map{
		"students": students,
		"meta":     helper.BuildMeta(total, p),
	})
}

/*
	=========================================================
	  POST /api/school/teacher/assign-students

=========================================================
*/
func (ctrl *ClassController) AssignStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AssignStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	class, err := ctrl.findOwnClass(req.ClassID, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	assigned := 0
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, sid := range req.StudentIDs {
			var student studentModel.Student
			if err := tx.Where("student_id = ? AND student_school_id = ?", sid, schoolID).First(&student).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Student "+sid.String()+" not found in this school")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student")
			}

			var existing int64
			if err := tx.Model(&model.ClassStudent{}).
				Where("class_student_class_id = ? AND class_student_student_id = ? AND class_student_removed_at IS NULL", class.ClassID, sid).
				Count(&existing).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check membership")
			}
			if existing > 0 {
				continue // already on the roster
			}

			if err := tx.Create(&model.ClassStudent{
				ClassStudentClassID:   class.ClassID,
				ClassStudentStudentID: sid,
			}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign student")
			}
			assigned++
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	if assigned > 0 {
		ctrl.Hub.Publish(realtime.Event{
			Name:    realtime.EvClassRosterUpdated,
			Payload: fiber.Map{"class_id": class.ClassID, "assigned": assigned},
		}, realtime.SchoolRoom(schoolID.String()))
	}

	return helper.Success(c, "Students assigned", fiber.Map{"assigned": assigned})
}

/*
	=========================================================
	  DELETE /api/school/teacher/class/:id/student/:student_id

=========================================================
*/
func (ctrl *ClassController) RemoveStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "class id is not valid")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "student id is not valid")
	}

	class, err := ctrl.findOwnClass(classID, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.ClassStudent{}).
		Where("class_student_class_id = ? AND class_student_student_id = ? AND class_student_removed_at IS NULL", class.ClassID, studentID).
		Update("class_student_removed_at", &now)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to remove student")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Student is not on this class roster")
	}

	room := realtime.SchoolRoom(schoolID.String())
	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvStudentsRemoved,
		Payload: fiber.Map{"class_id": class.ClassID, "student_id": studentID},
	}, room)
	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvClassRosterUpdated,
		Payload: fiber.Map{"class_id": class.ClassID},
	}, room)

	return helper.Success(c, "Student removed from class", nil)
}

func (ctrl *ClassController) findOwnClass(classID, schoolID uuid.UUID) (*model.Class, error) {
	var class model.Class
	if err := ctrl.DB.Where("class_id = ?", classID).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check class")
	}
	if class.ClassSchoolID != schoolID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Class does not belong to your school")
	}
	return &class, nil
}
