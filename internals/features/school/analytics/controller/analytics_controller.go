// file: internals/features/school/analytics/controller/analytics_controller.go
package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/analytics/service"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
	helperAuth "github.com/mardavsj/wisestudent-sub021/internals/helpers/auth"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// studentStatRow is the scan target for the aggregation query.
type studentStatRow struct {
	StudentID    uuid.UUID
	StudentName  string
	ClassID      uuid.UUID
	ClassName    string
	AvgScorePct  float64
	TotalPoints  float64
	Submissions  int
	LastActivity *time.Time
}

// Submissions are scoped to the roster class whose assignment produced
// them, so a student on two rosters doesn't leak scores across classes.
const studentStatsQuery = `
SELECT
  s.student_id,
  s.student_first_name || ' ' || s.student_last_name AS student_name,
  c.class_id,
  c.class_name,
  COALESCE(AVG(CASE WHEN sub.submission_max_points > 0
      THEN sub.submission_score / sub.submission_max_points * 100 END), 0) AS avg_score_pct,
  COALESCE(SUM(sub.submission_score), 0) AS total_points,
  COUNT(sub.submission_id) AS submissions,
  MAX(sub.created_at) AS last_activity
FROM students s
JOIN class_students cs
  ON cs.class_student_student_id = s.student_id
 AND cs.class_student_removed_at IS NULL
JOIN classes c
  ON c.class_id = cs.class_student_class_id
 AND c.deleted_at IS NULL
LEFT JOIN (
  SELECT raw.submission_id,
         raw.submission_student_id,
         raw.submission_score,
         raw.submission_max_points,
         raw.created_at,
         a.assignment_assigned_to
  FROM assignment_submissions raw
  JOIN assignments a
    ON a.assignment_id = raw.submission_assignment_id
   AND a.deleted_at IS NULL
) sub
  ON sub.submission_student_id = s.student_id
 AND c.class_id::text = ANY(sub.assignment_assigned_to)
WHERE s.student_school_id = ?
  AND s.deleted_at IS NULL
GROUP BY s.student_id, student_name, c.class_id, c.class_name`

func (ctrl *AnalyticsController) loadStudentStats(schoolID uuid.UUID) ([]service.StudentStat, error) {
	var rows []studentStatRow
	if err := ctrl.DB.Raw(studentStatsQuery, schoolID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make([]service.StudentStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, service.StudentStat{
			StudentID:    r.StudentID,
			StudentName:  r.StudentName,
			ClassID:      r.ClassID,
			ClassName:    r.ClassName,
			AvgScorePct:  r.AvgScorePct,
			TotalPoints:  r.TotalPoints,
			Submissions:  r.Submissions,
			LastActivity: r.LastActivity,
		})
	}
	return stats, nil
}

/*
	=========================================================
	  GET /api/school/teacher/class-mastery

=========================================================
*/
func (ctrl *AnalyticsController) ClassMastery(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	stats, err := ctrl.loadStudentStats(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load mastery data")
	}
	return helper.Success(c, "OK", service.ComputeClassMastery(stats))
}

/*
	=========================================================
	  GET /api/school/teacher/students-at-risk

=========================================================
*/
func (ctrl *AnalyticsController) StudentsAtRisk(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	stats, err := ctrl.loadStudentStats(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load at-risk data")
	}
	return helper.Success(c, "OK", service.ComputeAtRisk(stats, time.Now()))
}

/*
	=========================================================
	  GET /api/school/teacher/session-engagement

=========================================================
*/
func (ctrl *AnalyticsController) SessionEngagement(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var samples []service.SessionSample
	if err := ctrl.DB.Raw(`
SELECT sub.submission_student_id AS student_id,
       sub.submission_duration_sec AS duration_sec,
       sub.created_at AS at
FROM assignment_submissions sub
JOIN students s ON s.student_id = sub.submission_student_id
WHERE s.student_school_id = ? AND s.deleted_at IS NULL`, schoolID).
		Scan(&samples).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load engagement data")
	}

	return helper.Success(c, "OK", service.ComputeEngagement(samples, time.Now()))
}

/*
	=========================================================
	  GET /api/school/teacher/leaderboard?limit=

=========================================================
*/
func (ctrl *AnalyticsController) Leaderboard(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}

	stats, err := ctrl.loadStudentStats(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load leaderboard")
	}
	return helper.Success(c, "OK", service.ComputeLeaderboard(stats, limit))
}

/*
	=========================================================
	  GET /api/school/teacher/analytics/export  (CSV download)

=========================================================
*/
func (ctrl *AnalyticsController) Export(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	stats, err := ctrl.loadStudentStats(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load export data")
	}

	// Exports are chunked; ?per_page=all pulls everything up to the hard cap.
	p := helper.ParseFiber(c, "", "", helper.ExportOpts)
	stats = pageStats(stats, p)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"student_name", "class_name", "avg_score_pct", "total_points", "submissions", "last_activity"})
	for _, s := range stats {
		last := ""
		if s.LastActivity != nil {
			last = s.LastActivity.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			s.StudentName,
			s.ClassName,
			strconv.FormatFloat(s.AvgScorePct, 'f', 1, 64),
			strconv.FormatFloat(s.TotalPoints, 'f', 1, 64),
			strconv.Itoa(s.Submissions),
			last,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build CSV")
	}

	filename := fmt.Sprintf("analytics-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// pageStats applies the parsed page window to an in-memory stat slice.
func pageStats(stats []service.StudentStat, p helper.Params) []service.StudentStat {
	start := p.Offset()
	if start >= len(stats) {
		return nil
	}
	end := start + p.Limit()
	if end > len(stats) {
		end = len(stats)
	}
	return stats[start:end]
}
