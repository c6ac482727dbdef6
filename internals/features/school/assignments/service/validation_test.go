package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/model"
)

func validQuizInput() AssignmentInput {
	return AssignmentInput{
		Title:       "Fractions quiz",
		Description: "Quick check on fractions",
		Subject:     "Math",
		Type:        model.TypeQuiz,
		DueDate:     "2026-09-15",
		AssignedTo:  []string{"class-1"},
		Questions: []QuestionInput{
			{Type: model.QMultipleChoice, Text: "1/2 + 1/4 = ?", Options: []string{"3/4", "2/6"}, Points: 5},
		},
	}
}

func TestValidateAcceptsCompleteQuiz(t *testing.T) {
	assert.Empty(t, Validate(validQuizInput()))
}

func TestValidateRejectsMissingScalars(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AssignmentInput)
		wantField string
	}{
		{"empty title", func(in *AssignmentInput) { in.Title = "" }, "title"},
		{"whitespace title", func(in *AssignmentInput) { in.Title = "   " }, "title"},
		{"empty description", func(in *AssignmentInput) { in.Description = "" }, "description"},
		{"empty subject", func(in *AssignmentInput) { in.Subject = "" }, "subject"},
		{"empty due date", func(in *AssignmentInput) { in.DueDate = "" }, "due_date"},
		{"no classes", func(in *AssignmentInput) { in.AssignedTo = nil }, "assigned_to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validQuizInput()
			tt.mutate(&in)
			errs := Validate(in)
			require.NotEmpty(t, errs)
			found := false
			for _, fe := range errs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected an error on field %q, got %v", tt.wantField, errs)
		})
	}
}

func TestValidateQuizAndTestNeedQuestions(t *testing.T) {
	for _, typ := range []string{model.TypeQuiz, model.TypeTest} {
		in := validQuizInput()
		in.Type = typ
		in.Questions = nil
		errs := Validate(in)
		require.NotEmpty(t, errs, "type %s with zero questions must be rejected", typ)
		assert.Equal(t, "questions", errs[0].Field)
	}

	// homework without questions is fine
	in := validQuizInput()
	in.Type = model.TypeHomework
	in.Questions = nil
	assert.Empty(t, Validate(in))
}

func TestValidateVirtualProjectTasks(t *testing.T) {
	base := AssignmentInput{
		Title:       "Science fair",
		Description: "Build and present",
		Subject:     "Science",
		Type:        model.TypeProject,
		DueDate:     "2026-10-01",
		AssignedTo:  []string{"class-1"},
		IsVirtual:   true,
	}

	errs := Validate(base)
	require.NotEmpty(t, errs)
	assert.Equal(t, "tasks", errs[0].Field)

	withEmptyTask := base
	withEmptyTask.Tasks = []string{"Research the topic", "  "}
	errs = Validate(withEmptyTask)
	require.Len(t, errs, 1)
	assert.Equal(t, "tasks[1]", errs[0].Field)

	// non-virtual projects skip the task rules
	onSite := base
	onSite.IsVirtual = false
	assert.Empty(t, Validate(onSite))
}

func TestValidateQuestionTypeRestrictions(t *testing.T) {
	in := validQuizInput()
	in.Questions = append(in.Questions, QuestionInput{
		Type: model.QEssay, Text: "Explain your reasoning", Points: 10,
	})
	errs := Validate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "questions[1].type", errs[0].Field)

	// the same essay question is fine on homework
	hw := validQuizInput()
	hw.Type = model.TypeHomework
	hw.Questions = []QuestionInput{{Type: model.QEssay, Text: "Explain your reasoning", Points: 10}}
	assert.Empty(t, Validate(hw))
}

func TestValidateUnknownAssignmentType(t *testing.T) {
	in := validQuizInput()
	in.Type = "pop-quiz"
	errs := Validate(in)
	require.NotEmpty(t, errs)
	assert.Equal(t, "type", errs[0].Field)
	assert.Nil(t, AllowedQuestionTypes("pop-quiz"))
}

func TestValidateMultipleChoiceNeedsOptions(t *testing.T) {
	in := validQuizInput()
	in.Questions[0].Options = []string{"only one"}
	errs := Validate(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "questions[0].options", errs[0].Field)
}

func TestTotalPointsRecomputation(t *testing.T) {
	questions := []model.Question{
		{QuestionPoints: 5},
		{QuestionPoints: 10},
		{QuestionPoints: 3},
	}
	assert.Equal(t, 18, TotalPoints(questions))

	// delete one, edit another: the sum tracks the list, nothing drifts
	questions = questions[:2]
	questions[1].QuestionPoints = 7
	assert.Equal(t, 12, TotalPoints(questions))

	assert.Equal(t, 0, TotalPoints(nil))
}
