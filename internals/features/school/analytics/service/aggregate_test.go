// file: internals/features/school/analytics/service/aggregate_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestComputeClassMastery(t *testing.T) {
	classA := uuid.New()
	classB := uuid.New()
	now := time.Now()

	stats := []StudentStat{
		{StudentID: uuid.New(), StudentName: "Ava", ClassID: classA, ClassName: "4A", AvgScorePct: 92, Submissions: 5, LastActivity: tp(now)},
		{StudentID: uuid.New(), StudentName: "Ben", ClassID: classA, ClassName: "4A", AvgScorePct: 48, Submissions: 3, LastActivity: tp(now)},
		{StudentID: uuid.New(), StudentName: "Cleo", ClassID: classA, ClassName: "4A", Submissions: 0}, // never submitted
		{StudentID: uuid.New(), StudentName: "Dee", ClassID: classB, ClassName: "4B", AvgScorePct: 70, Submissions: 2, LastActivity: tp(now)},
	}

	out := ComputeClassMastery(stats)
	require.Len(t, out, 2)

	a := out[0]
	assert.Equal(t, "4A", a.ClassName)
	assert.Equal(t, 3, a.StudentCount)
	assert.Equal(t, 1, a.MasteredCount)
	assert.Equal(t, 1, a.StrugglingCount)
	// class average ignores the student with no submissions
	assert.InDelta(t, 70.0, a.AvgMasteryPct, 0.01)

	b := out[1]
	assert.Equal(t, "4B", b.ClassName)
	assert.Equal(t, 1, b.DevelopingCount)
}

func TestComputeAtRisk(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -2)
	stale := now.AddDate(0, 0, -20)

	stats := []StudentStat{
		{StudentName: "Fine", AvgScorePct: 85, Submissions: 4, LastActivity: tp(recent)},
		{StudentName: "LowScore", AvgScorePct: 40, Submissions: 4, LastActivity: tp(recent)},
		{StudentName: "Inactive", AvgScorePct: 90, Submissions: 4, LastActivity: tp(stale)},
		{StudentName: "Both", AvgScorePct: 30, Submissions: 2, LastActivity: tp(stale)},
		{StudentName: "NeverActive", Submissions: 0},
	}

	out := ComputeAtRisk(stats, now)
	require.Len(t, out, 4)

	byName := map[string]AtRiskStudent{}
	for _, r := range out {
		byName[r.StudentName] = r
	}

	assert.NotContains(t, byName, "Fine")
	assert.Equal(t, []string{"low_average_score"}, byName["LowScore"].Reasons)
	assert.Equal(t, []string{"inactive"}, byName["Inactive"].Reasons)
	assert.Equal(t, []string{"low_average_score", "inactive"}, byName["Both"].Reasons)
	// zero submissions means inactive, not low-score
	assert.Equal(t, []string{"inactive"}, byName["NeverActive"].Reasons)
}

func TestComputeAtRiskBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exactlyAtThreshold := StudentStat{
		StudentName:  "Edge",
		AvgScorePct:  AtRiskScoreThreshold,
		Submissions:  1,
		LastActivity: tp(now.AddDate(0, 0, -AtRiskInactiveDays+1)),
	}
	assert.Empty(t, ComputeAtRisk([]StudentStat{exactlyAtThreshold}, now))
}

func TestComputeEngagement(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s1, s2 := uuid.New(), uuid.New()

	samples := []SessionSample{
		{StudentID: s1, DurationSec: 300, At: now.AddDate(0, 0, -1)},
		{StudentID: s1, DurationSec: 600, At: now.AddDate(0, 0, -10)},
		{StudentID: s2, DurationSec: 300, At: now.AddDate(0, 0, -9)},
	}

	e := ComputeEngagement(samples, now)
	assert.Equal(t, 3, e.TotalSessions)
	assert.InDelta(t, 400.0, e.AvgDurationSec, 0.01)
	assert.Equal(t, 1, e.ActiveStudents7d)
	assert.InDelta(t, 1.5, e.SessionsPerStudent, 0.01)

	assert.Equal(t, Engagement{}, ComputeEngagement(nil, now))
}

func TestComputeLeaderboard(t *testing.T) {
	stats := []StudentStat{
		{StudentID: uuid.New(), StudentName: "Ava", TotalPoints: 50, Submissions: 5},
		{StudentID: uuid.New(), StudentName: "Ben", TotalPoints: 80, Submissions: 8},
		{StudentID: uuid.New(), StudentName: "Cleo", TotalPoints: 80, Submissions: 6},
		{StudentID: uuid.New(), StudentName: "Dee", TotalPoints: 20, Submissions: 2},
	}

	lb := ComputeLeaderboard(stats, 0)
	require.Len(t, lb.Leaderboard, 4)
	assert.Equal(t, 4, lb.TotalStudents)

	// tied totals share a rank and the next rank skips
	assert.Equal(t, 1, lb.Leaderboard[0].Rank)
	assert.Equal(t, "Ben", lb.Leaderboard[0].StudentName)
	assert.Equal(t, 1, lb.Leaderboard[1].Rank)
	assert.Equal(t, "Cleo", lb.Leaderboard[1].StudentName)
	assert.Equal(t, 3, lb.Leaderboard[2].Rank)
	assert.Equal(t, "Ava", lb.Leaderboard[2].StudentName)
	assert.Equal(t, 4, lb.Leaderboard[3].Rank)
}

func TestComputeLeaderboardLimit(t *testing.T) {
	stats := []StudentStat{
		{StudentID: uuid.New(), StudentName: "A", TotalPoints: 3},
		{StudentID: uuid.New(), StudentName: "B", TotalPoints: 2},
		{StudentID: uuid.New(), StudentName: "C", TotalPoints: 1},
	}
	lb := ComputeLeaderboard(stats, 2)
	assert.Len(t, lb.Leaderboard, 2)
	assert.Equal(t, 3, lb.TotalStudents)
}

func TestComputeLeaderboardMergesMultiRosterStudents(t *testing.T) {
	shared := uuid.New()
	stats := []StudentStat{
		{StudentID: shared, StudentName: "Ava", ClassName: "4A", TotalPoints: 30, Submissions: 3},
		{StudentID: uuid.New(), StudentName: "Ben", ClassName: "4A", TotalPoints: 40, Submissions: 4},
		{StudentID: shared, StudentName: "Ava", ClassName: "Math Club", TotalPoints: 25, Submissions: 2},
	}

	lb := ComputeLeaderboard(stats, 0)
	require.Len(t, lb.Leaderboard, 2)
	assert.Equal(t, 2, lb.TotalStudents)

	// the two roster rows collapse into one entry with summed totals
	top := lb.Leaderboard[0]
	assert.Equal(t, shared, top.StudentID)
	assert.InDelta(t, 55.0, top.TotalPoints, 0.01)
	assert.Equal(t, 5, top.Submissions)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 2, lb.Leaderboard[1].Rank)
}
