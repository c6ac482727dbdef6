// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mardavsj/wisestudent-sub021/internals/configs"
	dto "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/dto"
	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/service"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
	"github.com/mardavsj/wisestudent-sub021/internals/realtime"
)

const inviteTTL = 7 * 24 * time.Hour

type StudentController struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Email     *service.InviteEmailService
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, hub *realtime.Hub, email *service.InviteEmailService) *StudentController {
	return &StudentController{
		DB:        db,
		Hub:       hub,
		Email:     email,
		Validator: validator.New(),
	}
}

/*
	=========================================================
	  POST /api/school/teacher/generate-invite

=========================================================
*/
func (ctrl *StudentController) GenerateInvite(c *fiber.Ctx) error {
	return ctrl.generateInvite(c, model.InviteKindStudent)
}

/*
	=========================================================
	  POST /api/school/teacher/generate-registration-link

=========================================================
*/
func (ctrl *StudentController) GenerateRegistrationLink(c *fiber.Ctx) error {
	return ctrl.generateInvite(c, model.InviteKindRegistration)
}

func (ctrl *StudentController) generateInvite(c *fiber.Ctx, kind string) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.GenerateInviteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ctrl.Validator.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
	}

	invite, err := ctrl.createInvite(schoolID, teacherID, kind, req.InviteEmail)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create invite")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Invite created", dto.InviteResponse{
		InviteToken: invite.InviteToken,
		InviteLink:  configs.AppBaseURL + "/join?invite=" + invite.InviteToken,
		ExpiresAt:   invite.InviteExpiresAt,
	})
}

/*
	=========================================================
	  POST /api/school/teacher/send-invites

=========================================================
*/
func (ctrl *StudentController) SendInvites(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SendInvitesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	schoolName := helperAuth.GetUserName(c) + "'s school"

	out := dto.SendInvitesResponse{}
	for _, email := range req.Emails {
		email = strings.ToLower(strings.TrimSpace(email))
		invite, err := ctrl.createInvite(schoolID, teacherID, model.InviteKindStudent, &email)
		if err != nil {
			log.Printf("[ERROR] invite create for %s: %v", email, err)
			out.Failed = append(out.Failed, email)
			continue
		}
		if err := ctrl.Email.SendInviteEmail(c.UserContext(), email, schoolName, invite.InviteToken); err != nil {
			log.Printf("[ERROR] invite email for %s: %v", email, err)
			out.Failed = append(out.Failed, email)
			continue
		}
		out.Sent = append(out.Sent, email)
	}

	if len(out.Sent) == 0 && len(out.Failed) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusBadGateway, "No invites could be sent", out.Failed)
	}
	return helper.Success(c, "Invites sent", out)
}

/*
	=========================================================
	  POST /api/school/teacher/bulk-upload-students  (multipart CSV)
	  ?dry_run=true validates + previews without writing

=========================================================
*/
func (ctrl *StudentController) BulkUploadStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSV file is required (field name: file)")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Failed to open uploaded file")
	}
	defer f.Close()

	roster, err := service.ParseRosterCSV(f)
	if err != nil {
		var he *service.HeaderError
		if errors.As(err, &he) {
			return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, he.Error(), fiber.Map{
				"missing_columns":    he.Missing,
				"unexpected_columns": he.Unexpected,
			})
		}
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if len(roster.Rows) == 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "CSV contains no data rows")
	}

	dryRun := strings.EqualFold(c.Query("dry_run"), "true")

	// the client blocks upload while the preview shows errors; the server
	// refuses on any broken row so partial imports never happen
	preview := dto.BulkUploadResponse{
		Preview:   roster.Preview(),
		TotalRows: len(roster.Rows),
		DryRun:    true,
	}
	if roster.HasErrors() {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, "CSV has validation errors", preview)
	}
	if dryRun {
		return helper.Success(c, "CSV is valid", preview)
	}

	imported := 0
	txErr := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range roster.Rows {
			student := model.Student{
				StudentSchoolID:  schoolID,
				StudentRegNo:     row.RegNo,
				StudentFirstName: row.FirstName,
				StudentLastName:  row.LastName,
				StudentDOB:       row.DOB,
				StudentPhone:     row.Phone,
				StudentEmail:     strings.ToLower(row.Email),
				StudentGrade:     row.Grade,
				StudentSection:   row.Section,
			}
			// upsert on (school, reg_no) so re-uploads refresh details
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "student_school_id"}, {Name: "student_reg_no"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"student_first_name", "student_last_name", "student_dob",
					"student_phone", "student_email", "student_grade", "student_section",
				}),
			}).Create(&student).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to import row "+row.RegNo)
			}
			imported++
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	ctrl.Hub.Publish(realtime.Event{
		Name:    realtime.EvStudentsUpdated,
		Payload: fiber.Map{"imported": imported},
	}, realtime.SchoolRoom(schoolID.String()))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Students imported", dto.BulkUploadResponse{
		Preview:   roster.Preview(),
		TotalRows: len(roster.Rows),
		Imported:  imported,
	})
}

func (ctrl *StudentController) createInvite(schoolID, createdBy uuid.UUID, kind string, email *string) (*model.Invite, error) {
	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}
	invite := model.Invite{
		InviteSchoolID:  schoolID,
		InviteCreatedBy: createdBy,
		InviteKind:      kind,
		InviteEmail:     email,
		InviteToken:     token,
		InviteExpiresAt: time.Now().Add(inviteTTL),
	}
	if err := ctrl.DB.Create(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func newInviteToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
