package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumind/interview-insight/internal/usecase"
)

func TestResumeParse_StructuredOutput(t *testing.T) {
	ai := &fakeAI{Respond: func(_, _ string) (string, error) {
		return "Here is the parsed resume:\n```json\n" + `{
			"personal_info": {"name": "Li Wei", "email": "li@example.com", "position": "Backend Engineer"},
			"education": [{"school": "Tsinghua", "major": "CS", "degree": "BSc", "duration": "2016-2020"}],
			"work_experience": [{"company": "Acme", "position": "Engineer", "duration": "2020-2024", "description": "built APIs"}],
			"skills": [{"name": "Go"}, {"name": ""}],
			"projects": [{"name": "order service", "description": "order intake"}, {"description": "unnamed"}]
		}` + "\n```", nil
	}}
	svc := usecase.NewResumeService(ai)

	content := svc.Parse(context.Background(), "raw resume text")
	assert.Equal(t, "Li Wei", content.PersonalInfo.Name)
	assert.Equal(t, "raw resume text", content.RawText)
	require.Len(t, content.Education, 1)

	// nameless entries dropped, defaults filled
	require.Len(t, content.Skills, 1)
	assert.Equal(t, "proficient", content.Skills[0].Level)
	assert.Equal(t, "other", content.Skills[0].Category)
	require.Len(t, content.Projects, 1)
	assert.NotNil(t, content.Projects[0].Technologies)
}

func TestResumeParse_FallbackKeepsRawText(t *testing.T) {
	svc := usecase.NewResumeService(failingAI())
	content := svc.Parse(context.Background(), "unparsed resume")
	assert.Equal(t, "unparsed resume", content.RawText)
	assert.Empty(t, content.Skills)
	assert.NotNil(t, content.Skills)
	assert.Empty(t, content.Education)
	assert.Empty(t, content.WorkExperience)
	assert.Empty(t, content.Projects)
}

func TestResumeParse_UnparsableResponseFallsBack(t *testing.T) {
	ai := &fakeAI{Respond: func(_, _ string) (string, error) {
		return "I cannot produce JSON for this resume.", nil
	}}
	svc := usecase.NewResumeService(ai)
	content := svc.Parse(context.Background(), "text")
	assert.Equal(t, "text", content.RawText)
	assert.Empty(t, content.Projects)
}
