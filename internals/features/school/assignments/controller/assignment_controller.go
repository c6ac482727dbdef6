// file: internals/features/school/assignments/controller/assignment_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/model"
	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/service"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

type AssignmentController struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB, hub *realtime.Hub) *AssignmentController {
	return &AssignmentController{
		DB:        db,
		Hub:       hub,
		Validator: validator.New(),
	}
}

/*
	=========================================================
	  GET /api/school/teacher/assignments?type=&subject=

=========================================================
*/
func (ctrl *AssignmentController) ListAssignments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "due_date", "asc", helper.TeacherOpts)
	allowedSort := map[string]string{
		"due_date":   "assignment_due_date",
		"title":      "assignment_title",
		"created_at": "created_at",
	}
	orderClause, err := p.SafeOrderClause(allowedSort, "due_date")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "sort_by is not valid")
	}
	orderExpr := strings.TrimPrefix(orderClause, "ORDER BY ")

	// hidden rows ("deleted for me") are filtered per teacher
	q := ctrl.DB.Model(&model.Assignment{}).
		Where("assignment_school_id = ?", schoolID).
		Where("assignment_id NOT IN (?)",
			ctrl.DB.Model(&model.AssignmentHide{}).
				Select("assignment_hide_assignment_id").
				Where("assignment_hide_user_id = ?", teacherID),
		)

	if typ := strings.TrimSpace(c.Query("type")); typ != "" {
		q = q.Where("assignment_type = ?", typ)
	}
	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		q = q.Where("assignment_subject = ?", subject)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var rows []model.Assignment
	if err := q.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_order")
	}).Order(orderExpr).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assignments")
	}

	out := make([]dto.AssignmentResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.NewAssignmentResponse(a))
	}
	return helper.Success(c, "OK", fiber.Map{
		"assignments": out,
		"meta":        helper.BuildMeta(total, p),
	})
}

/*
	=========================================================
	  POST /api/school/teacher/assignments

=========================================================
*/
func (ctrl *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// rule layer runs before any write; a rejected assignment never
	// touches the DB or the event hub
	if fieldErrs := service.Validate(req.ToValidationInput()); len(fieldErrs) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, "Assignment is not valid", fieldErrs)
	}

	dueDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.AssignmentDueDate))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "due date is not valid (YYYY-MM-DD)")
	}

	assignment := req.ToModel(schoolID, teacherID, dueDate)
	if err := ctrl.DB.Create(assignment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}

	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvAssignmentCreated,
		Payload: fiber.Map{"assignment_id": assignment.AssignmentID, "title": assignment.AssignmentTitle},
	}, realtime.SchoolRoom(schoolID.String()))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assignment created", dto.NewAssignmentResponse(*assignment))
}

/*
	=========================================================
	  PUT /api/school/teacher/assignments/:id

=========================================================
*/
func (ctrl *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	assignment, err := ctrl.findOwnAssignment(c, schoolID, teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fieldErrs := service.Validate(req.ToValidationInput()); len(fieldErrs) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, "Assignment is not valid", fieldErrs)
	}

	dueDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.AssignmentDueDate))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "due date is not valid (YYYY-MM-DD)")
	}

	updated := req.ToModel(schoolID, teacherID, dueDate)
	updated.AssignmentID = assignment.AssignmentID

	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// full question replace keeps ordering and totals simple
		if err := tx.Where("question_assignment_id = ?", assignment.AssignmentID).Delete(&model.Question{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to replace questions")
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(updated).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update assignment")
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvAssignmentUpdated,
		Payload: fiber.Map{"assignment_id": assignment.AssignmentID},
	}, realtime.SchoolRoom(schoolID.String()))

	return helper.Success(c, "Assignment updated", dto.NewAssignmentResponse(*updated))
}

/*
	=========================================================
	  DELETE /api/school/teacher/assignments/:id/for-me

=========================================================
*/
func (ctrl *AssignmentController) DeleteForMe(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	assignment, err := ctrl.findSchoolAssignment(c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	hide := model.AssignmentHide{
		AssignmentHideAssignmentID: assignment.AssignmentID,
		AssignmentHideUserID:       teacherID,
	}
	// second hide of the same row is a no-op
	if err := ctrl.DB.Where(&hide).FirstOrCreate(&hide).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hide assignment")
	}

	return helper.Success(c, "Assignment hidden from your lists", nil)
}

/*
	=========================================================
	  DELETE /api/school/teacher/assignments/:id/for-everyone

=========================================================
*/
func (ctrl *AssignmentController) DeleteForEveryone(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	assignment, err := ctrl.findOwnAssignment(c, schoolID, teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.DB.Delete(assignment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}

	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvAssignmentDeleted,
		Payload: fiber.Map{"assignment_id": assignment.AssignmentID},
	}, realtime.SchoolRoom(schoolID.String()))

	return helper.Success(c, "Assignment deleted for everyone", nil)
}

/*
	=========================================================
	  GET /api/school/teacher/assignment-type-stats

=========================================================
*/
func (ctrl *AssignmentController) TypeStats(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var stats []dto.TypeStat
	if err := ctrl.DB.Model(&model.Assignment{}).
		Select("assignment_type, COUNT(*) AS count").
		Where("assignment_school_id = ?", schoolID).
		Group("assignment_type").
		Scan(&stats).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	return helper.Success(c, "OK", stats)
}

/*
	=========================================================
	  POST /api/school/assignments/:id/submissions

=========================================================
*/
func (ctrl *AssignmentController) SubmitAssignment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	assignment, err := ctrl.findSchoolAssignment(c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var questions []model.Question
	if err := ctrl.DB.Where("question_assignment_id = ?", assignment.AssignmentID).Find(&questions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load questions")
	}

	submission := model.Submission{
		SubmissionAssignmentID: assignment.AssignmentID,
		SubmissionStudentID:    req.StudentID,
		SubmissionScore:        req.Score,
		SubmissionMaxPoints:    service.TotalPoints(questions),
		SubmissionDurationSec:  req.DurationSec,
	}
	if err := ctrl.DB.Create(&submission).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to record submission")
	}

	room := realtime.SchoolRoom(schoolID.String())
	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvAssignmentSubmitted,
		Payload: fiber.Map{"assignment_id": assignment.AssignmentID, "student_id": req.StudentID},
	}, room)
	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvStudentActivityNew,
		Payload: fiber.Map{"student_id": req.StudentID, "kind": "submission"},
	}, room)
	// a new submission lands in the author's grading queue
	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvTeacherTaskUpdate,
		Payload: fiber.Map{"assignment_id": assignment.AssignmentID, "task": "grade_submission"},
	}, realtime.UserRoom(assignment.AssignmentTeacherID.String()))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Submission recorded", submission)
}

/* ========================= helpers ========================= */

func (ctrl *AssignmentController) findSchoolAssignment(c *fiber.Ctx, schoolID uuid.UUID) (*model.Assignment, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "assignment id is not valid")
	}
	var assignment model.Assignment
	if err := ctrl.DB.Where("assignment_id = ?", id).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check assignment")
	}
	if assignment.AssignmentSchoolID != schoolID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Assignment does not belong to your school")
	}
	return &assignment, nil
}

func (ctrl *AssignmentController) findOwnAssignment(c *fiber.Ctx, schoolID, teacherID uuid.UUID) (*model.Assignment, error) {
	assignment, err := ctrl.findSchoolAssignment(c, schoolID)
	if err != nil {
		return nil, err
	}
	if assignment.AssignmentTeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the assignment's author may do this")
	}
	return assignment, nil
}
