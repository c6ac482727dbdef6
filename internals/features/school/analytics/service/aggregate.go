// file: internals/features/school/analytics/service/aggregate.go
package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// AtRiskScoreThreshold is the average-percentage floor; students
	// below it are flagged regardless of recency.
	AtRiskScoreThreshold = 60.0
	// AtRiskInactiveDays flags students with no recorded activity in
	// this window, even when their scores are fine.
	AtRiskInactiveDays = 14
)

// StudentStat is one student's aggregated submission record, as pulled
// from the submissions table. All computations below work from this so
// the rules stay testable without a database.
type StudentStat struct {
	StudentID    uuid.UUID
	StudentName  string
	ClassID      uuid.UUID
	ClassName    string
	AvgScorePct  float64 // mean of score/max_points*100 over submissions
	TotalPoints  float64 // raw points earned across submissions
	Submissions  int
	LastActivity *time.Time // nil when the student never submitted
}

/* ===================== class mastery ===================== */

type ClassMastery struct {
	ClassID         uuid.UUID `json:"class_id"`
	ClassName       string    `json:"class_name"`
	StudentCount    int       `json:"student_count"`
	AvgMasteryPct   float64   `json:"avg_mastery_pct"`
	MasteredCount   int       `json:"mastered_count"`   // >= 80%
	DevelopingCount int       `json:"developing_count"` // 50–79%
	StrugglingCount int       `json:"struggling_count"` // < 50%
}

// ComputeClassMastery groups per-student averages into per-class rows.
// Students with zero submissions are counted but contribute nothing to
// the class average.
func ComputeClassMastery(stats []StudentStat) []ClassMastery {
	byClass := map[uuid.UUID]*ClassMastery{}
	sums := map[uuid.UUID]float64{}
	scored := map[uuid.UUID]int{}

	for _, s := range stats {
		row, ok := byClass[s.ClassID]
		if !ok {
			row = &ClassMastery{ClassID: s.ClassID, ClassName: s.ClassName}
			byClass[s.ClassID] = row
		}
		row.StudentCount++
		if s.Submissions == 0 {
			continue
		}
		sums[s.ClassID] += s.AvgScorePct
		scored[s.ClassID]++
		switch {
		case s.AvgScorePct >= 80:
			row.MasteredCount++
		case s.AvgScorePct >= 50:
			row.DevelopingCount++
		default:
			row.StrugglingCount++
		}
	}

	out := make([]ClassMastery, 0, len(byClass))
	for id, row := range byClass {
		if n := scored[id]; n > 0 {
			row.AvgMasteryPct = round1(sums[id] / float64(n))
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}

/* ===================== at-risk ===================== */

type AtRiskStudent struct {
	StudentID   uuid.UUID  `json:"student_id"`
	StudentName string     `json:"student_name"`
	ClassName   string     `json:"class_name"`
	AvgScorePct float64    `json:"avg_score_pct"`
	LastActive  *time.Time `json:"last_active"`
	Reasons     []string   `json:"reasons"`
}

// ComputeAtRisk flags students whose average sits below the score
// threshold, or who have been inactive for AtRiskInactiveDays. A
// student can carry both reasons.
func ComputeAtRisk(stats []StudentStat, now time.Time) []AtRiskStudent {
	cutoff := now.AddDate(0, 0, -AtRiskInactiveDays)

	var out []AtRiskStudent
	for _, s := range stats {
		var reasons []string
		if s.Submissions > 0 && s.AvgScorePct < AtRiskScoreThreshold {
			reasons = append(reasons, "low_average_score")
		}
		if s.LastActivity == nil || s.LastActivity.Before(cutoff) {
			reasons = append(reasons, "inactive")
		}
		if len(reasons) == 0 {
			continue
		}
		out = append(out, AtRiskStudent{
			StudentID:   s.StudentID,
			StudentName: s.StudentName,
			ClassName:   s.ClassName,
			AvgScorePct: round1(s.AvgScorePct),
			LastActive:  s.LastActivity,
			Reasons:     reasons,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgScorePct < out[j].AvgScorePct })
	return out
}

/* ===================== session engagement ===================== */

type SessionSample struct {
	StudentID   uuid.UUID
	DurationSec int
	At          time.Time
}

type Engagement struct {
	TotalSessions      int     `json:"total_sessions"`
	AvgDurationSec     float64 `json:"avg_duration_sec"`
	ActiveStudents7d   int     `json:"active_students_7d"`
	SessionsPerStudent float64 `json:"sessions_per_student"`
}

func ComputeEngagement(samples []SessionSample, now time.Time) Engagement {
	if len(samples) == 0 {
		return Engagement{}
	}
	weekAgo := now.AddDate(0, 0, -7)

	totalDur := 0
	students := map[uuid.UUID]struct{}{}
	recent := map[uuid.UUID]struct{}{}
	for _, s := range samples {
		totalDur += s.DurationSec
		students[s.StudentID] = struct{}{}
		if !s.At.Before(weekAgo) {
			recent[s.StudentID] = struct{}{}
		}
	}

	return Engagement{
		TotalSessions:      len(samples),
		AvgDurationSec:     round1(float64(totalDur) / float64(len(samples))),
		ActiveStudents7d:   len(recent),
		SessionsPerStudent: round1(float64(len(samples)) / float64(len(students))),
	}
}

/* ===================== leaderboard ===================== */

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	ClassName   string    `json:"class_name"`
	TotalPoints float64   `json:"total_points"`
	Submissions int       `json:"submissions"`
}

type Leaderboard struct {
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	TotalStudents int                `json:"total_students"`
}

// ComputeLeaderboard ranks students by total points. Rows for the same
// student (one per roster class) are merged first, so nobody appears
// twice. Equal point totals share a rank (1, 1, 3, ...); names break
// ordering ties so the output is stable.
func ComputeLeaderboard(stats []StudentStat, limit int) Leaderboard {
	sorted := mergeByStudent(stats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].StudentName < sorted[j].StudentName
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	rank := 0
	var prevPoints float64
	for i, s := range sorted {
		if i == 0 || s.TotalPoints != prevPoints {
			rank = i + 1
		}
		prevPoints = s.TotalPoints
		entries = append(entries, LeaderboardEntry{
			Rank:        rank,
			StudentID:   s.StudentID,
			StudentName: s.StudentName,
			ClassName:   s.ClassName,
			TotalPoints: s.TotalPoints,
			Submissions: s.Submissions,
		})
		if limit > 0 && len(entries) >= limit {
			break
		}
	}

	return Leaderboard{Leaderboard: entries, TotalStudents: len(sorted)}
}

func mergeByStudent(stats []StudentStat) []StudentStat {
	merged := make([]StudentStat, 0, len(stats))
	index := map[uuid.UUID]int{}
	for _, s := range stats {
		if i, ok := index[s.StudentID]; ok {
			merged[i].TotalPoints += s.TotalPoints
			merged[i].Submissions += s.Submissions
			continue
		}
		index[s.StudentID] = len(merged)
		merged = append(merged, s)
	}
	return merged
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
