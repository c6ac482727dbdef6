// file: internals/features/school/students/service/roster_csv.go
package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PreviewSize rows are echoed back to the client before commit.
const PreviewSize = 10

// requiredColumns is the exact header set; case- and order-insensitive.
var requiredColumns = []string{
	"reg_no", "first_name", "last_name", "dob", "phone", "email", "grade", "section",
}

type RosterRow struct {
	Line      int      `json:"line"`
	RegNo     string   `json:"reg_no"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	DOB       string   `json:"dob"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Grade     string   `json:"grade"`
	Section   string   `json:"section"`
	Errors    []string `json:"errors,omitempty"`
}

type RosterFile struct {
	Rows []RosterRow `json:"rows"`
}

// HeaderError rejects the whole file before any row is parsed.
type HeaderError struct {
	Missing    []string
	Unexpected []string
}

func (e *HeaderError) Error() string {
	parts := []string{}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing column(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected column(s): "+strings.Join(e.Unexpected, ", "))
	}
	return "invalid CSV header: " + strings.Join(parts, "; ")
}

// ParseRosterCSV reads and validates a roster CSV. A bad header fails the
// whole file; row-level problems are collected per row so the client can
// show them inline.
func ParseRosterCSV(r io.Reader) (*RosterFile, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	file := &RosterFile{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			file.Rows = append(file.Rows, RosterRow{
				Line:   line,
				Errors: []string{"Malformed CSV row"},
			})
			continue
		}

		get := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := RosterRow{
			Line:      line,
			RegNo:     get("reg_no"),
			FirstName: get("first_name"),
			LastName:  get("last_name"),
			DOB:       get("dob"),
			Phone:     get("phone"),
			Email:     get("email"),
			Grade:     get("grade"),
			Section:   get("section"),
		}
		row.Errors = validateRow(row)
		file.Rows = append(file.Rows, row)
	}
	return file, nil
}

func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	var unexpected []string
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !isRequiredColumn(name) {
			unexpected = append(unexpected, name)
			continue
		}
		index[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return nil, &HeaderError{Missing: missing, Unexpected: unexpected}
	}
	return index, nil
}

func isRequiredColumn(name string) bool {
	for _, col := range requiredColumns {
		if col == name {
			return true
		}
	}
	return false
}

func validateRow(row RosterRow) []string {
	var errs []string
	if row.RegNo == "" {
		errs = append(errs, "Registration number is required")
	}
	if row.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if row.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if !strings.Contains(row.Email, "@") {
		errs = append(errs, "Invalid email")
	}
	if len(row.Phone) < 10 {
		errs = append(errs, "Phone must be at least 10 digits")
	}
	return errs
}

// Preview returns the first PreviewSize rows.
func (f *RosterFile) Preview() []RosterRow {
	if len(f.Rows) <= PreviewSize {
		return f.Rows
	}
	return f.Rows[:PreviewSize]
}

// PreviewHasErrors reports whether any previewed row failed validation.
// The upload endpoint refuses to commit while this is true.
func (f *RosterFile) PreviewHasErrors() bool {
	for _, row := range f.Preview() {
		if len(row.Errors) > 0 {
			return true
		}
	}
	return false
}

// HasErrors reports whether any row in the file failed validation.
func (f *RosterFile) HasErrors() bool {
	for _, row := range f.Rows {
		if len(row.Errors) > 0 {
			return true
		}
	}
	return false
}
