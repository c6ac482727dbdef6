package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHeader = "reg_no,first_name,last_name,dob,phone,email,grade,section"

func TestParseRosterCSVValidRow(t *testing.T) {
	in := validHeader + "\n1001,John,Doe,2005-01-15,1234567890,john@example.com,9,A\n"

	file, err := ParseRosterCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, file.Rows, 1)

	row := file.Rows[0]
	assert.Empty(t, row.Errors)
	assert.Equal(t, "1001", row.RegNo)
	assert.Equal(t, "John", row.FirstName)
	assert.Equal(t, "Doe", row.LastName)
	assert.Equal(t, "john@example.com", row.Email)
	assert.False(t, file.HasErrors())
	assert.False(t, file.PreviewHasErrors())
}

func TestParseRosterCSVRowErrors(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantReason string
	}{
		{
			name:       "bad email",
			row:        "1001,John,Doe,2005-01-15,1234567890,bademail,9,A",
			wantReason: "Invalid email",
		},
		{
			name:       "short phone",
			row:        "1001,John,Doe,2005-01-15,12345,john@example.com,9,A",
			wantReason: "Phone must be at least 10 digits",
		},
		{
			name:       "missing first name",
			row:        "1001,,Doe,2005-01-15,1234567890,john@example.com,9,A",
			wantReason: "First name is required",
		},
		{
			name:       "missing last name",
			row:        "1001,John,,2005-01-15,1234567890,john@example.com,9,A",
			wantReason: "Last name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseRosterCSV(strings.NewReader(validHeader + "\n" + tt.row + "\n"))
			require.NoError(t, err)
			require.Len(t, file.Rows, 1)
			assert.Contains(t, file.Rows[0].Errors, tt.wantReason)
			assert.True(t, file.HasErrors())
		})
	}
}

func TestParseRosterCSVHeaderCaseAndOrderInsensitive(t *testing.T) {
	in := "Email,REG_NO,Section,first_name,LAST_NAME,dob,PHONE,grade\n" +
		"jane@example.com,1002,B,Jane,Smith,2006-02-20,0987654321,8\n"

	file, err := ParseRosterCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, file.Rows, 1)

	row := file.Rows[0]
	assert.Empty(t, row.Errors)
	assert.Equal(t, "1002", row.RegNo)
	assert.Equal(t, "jane@example.com", row.Email)
	assert.Equal(t, "B", row.Section)
}

func TestParseRosterCSVMissingColumnRejectsFile(t *testing.T) {
	// header without dob: the file is rejected before any row parsing
	in := "reg_no,first_name,last_name,phone,email,grade,section\n" +
		"1001,John,Doe,1234567890,john@example.com,9,A\n"

	file, err := ParseRosterCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Nil(t, file)

	var he *HeaderError
	require.ErrorAs(t, err, &he)
	assert.Contains(t, he.Missing, "dob")
}

func TestParseRosterCSVUnexpectedColumnRejectsFile(t *testing.T) {
	in := validHeader + ",nickname\n"

	_, err := ParseRosterCSV(strings.NewReader(in))
	require.Error(t, err)

	var he *HeaderError
	require.ErrorAs(t, err, &he)
	assert.Contains(t, he.Unexpected, "nickname")
}

func TestRosterPreviewCapsAtTen(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(validHeader + "\n")
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("%d,First%d,Last%d,2005-01-01,1234567890,s%d@example.com,9,A\n", 1000+i, i, i, i))
	}

	file, err := ParseRosterCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Len(t, file.Rows, 25)
	assert.Len(t, file.Preview(), PreviewSize)
}

func TestRosterPreviewErrorsOutsidePreviewWindow(t *testing.T) {
	// row 12 is broken; the preview (rows 1-10) stays clean but the file
	// as a whole still reports errors
	var sb strings.Builder
	sb.WriteString(validHeader + "\n")
	for i := 0; i < 11; i++ {
		sb.WriteString(fmt.Sprintf("%d,First%d,Last%d,2005-01-01,1234567890,s%d@example.com,9,A\n", 1000+i, i, i, i))
	}
	sb.WriteString("2000,Bad,Row,2005-01-01,1234567890,bademail,9,A\n")

	file, err := ParseRosterCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.False(t, file.PreviewHasErrors())
	assert.True(t, file.HasErrors())
}
