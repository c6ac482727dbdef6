// file: internals/features/school/analytics/controller/analytics_controller_test.go
package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	service "github.com/mardavsj/wisestudent-sub021/internals/features/school/analytics/service"
	helper "github.com/mardavsj/wisestudent-sub021/internals/helpers"
)

func exportRows(n int) []service.StudentStat {
	rows := make([]service.StudentStat, n)
	for i := range rows {
		rows[i].StudentName = "Student " + string(rune('A'+i))
	}
	return rows
}

func TestPageStatsWindows(t *testing.T) {
	rows := exportRows(5)

	page1 := pageStats(rows, helper.Params{Page: 1, PerPage: 2})
	assert.Len(t, page1, 2)
	assert.Equal(t, "Student A", page1[0].StudentName)

	page3 := pageStats(rows, helper.Params{Page: 3, PerPage: 2})
	assert.Len(t, page3, 1)
	assert.Equal(t, "Student E", page3[0].StudentName)

	// past the end
	assert.Nil(t, pageStats(rows, helper.Params{Page: 4, PerPage: 2}))

	// short tail is clamped, not an index panic
	assert.Len(t, pageStats(rows, helper.Params{Page: 1, PerPage: 100}), 5)
}
