package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"careerai-backend/internal/domain"
	"careerai-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func (f *fixture) studentWithSkills(t *testing.T, email string, skills ...string) *domain.User {
	t.Helper()
	student := f.signup(t, email, domain.RoleStudent)
	user, err := f.userUC.UpdateProfile(context.Background(), student, domain.UserPatch{Skills: &skills})
	require.NoError(t, err)
	return user
}

func TestAnalyzeResume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.studentWithSkills(t, "student@uni.test", "Go")
	other := f.signup(t, "other@uni.test", domain.RoleStudent)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
	resume, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	require.NoError(t, err)

	analysis, err := f.analysisUC.AnalyzeResume(ctx, student, resume.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, resume.ID, analysis.ResumeID)
	assert.Nil(t, analysis.JobID)
	assert.Nil(t, analysis.MatchScore)
	// one of five skills plus the accepted file format
	assert.InDelta(t, 16, analysis.OverallScore, 0.001)
	assert.Contains(t, analysis.Strengths, "Resume is in a widely accepted format")
	assert.Contains(t, analysis.Weaknesses, "No profile summary")
	assert.NotEmpty(t, analysis.Recommendations)
	assert.Equal(t, "skills-1.0", analysis.AnalysisVersion)
	assert.False(t, analysis.AnalyzedAt.IsZero())

	_, err = f.analysisUC.AnalyzeResume(ctx, other, resume.ID)
	assertCode(t, http.StatusForbidden, err)
	_, err = f.analysisUC.AnalyzeResume(ctx, employer, resume.ID)
	assertCode(t, http.StatusForbidden, err)
	_, err = f.analysisUC.AnalyzeResume(ctx, student, "missing")
	assertCode(t, http.StatusNotFound, err)
}

func TestMatchJobAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
	student := f.studentWithSkills(t, "student@uni.test", "go")
	job := f.postJob(t, employer)
	resume, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	require.NoError(t, err)

	general, err := f.analysisUC.AnalyzeResume(ctx, student, resume.ID)
	require.NoError(t, err)

	match, err := f.analysisUC.MatchJob(ctx, student, resume.ID, job.ID)
	require.NoError(t, err)
	require.NotNil(t, match.JobID)
	assert.Equal(t, job.ID, *match.JobID)
	require.NotNil(t, match.MatchScore)
	assert.InDelta(t, 50, *match.MatchScore, 0.001)
	assert.Equal(t, []string{"PostgreSQL"}, match.MissingSkills)
	assert.Equal(t, general.OverallScore, match.OverallScore)

	_, err = f.analysisUC.MatchJob(ctx, student, resume.ID, "missing")
	assertCode(t, http.StatusNotFound, err)

	history, err := f.analysisUC.History(ctx, student, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.ID, history.ResumeID)
	assert.Equal(t, 2, history.TotalAnalyses)
	require.Len(t, history.Analyses, 2)
	assert.Equal(t, match.ID, history.Analyses[0].ID)
	assert.Equal(t, general.ID, history.Analyses[1].ID)

	other := f.signup(t, "other@uni.test", domain.RoleStudent)
	_, err = f.analysisUC.History(ctx, other, resume.ID)
	assertCode(t, http.StatusForbidden, err)

	// deleting the job keeps the analysis but drops the link
	require.NoError(t, f.jobUC.DeleteJob(ctx, employer, job.ID))
	history, err = f.analysisUC.History(ctx, student, resume.ID)
	require.NoError(t, err)
	require.Len(t, history.Analyses, 2)
	assert.Nil(t, history.Analyses[0].JobID)

	require.NoError(t, f.resumeUC.Delete(ctx, student, resume.ID))
	_, err = f.analysisUC.History(ctx, student, resume.ID)
	assertCode(t, http.StatusNotFound, err)
}

func TestHistoryEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)
	resume, err := f.resumeUC.Upload(ctx, student, domain.UploadInput{FileName: "cv.pdf", Content: pdfBody})
	require.NoError(t, err)

	history, err := f.analysisUC.History(ctx, student, resume.ID)
	require.NoError(t, err)
	assert.Zero(t, history.TotalAnalyses)
	assert.NotNil(t, history.Analyses)
}

func TestApplyRecordsMatchScore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
	job := f.postJob(t, employer)

	full := f.studentWithSkills(t, "full@uni.test", "Go", "PostgreSQL", "Docker")
	app, err := f.appUC.Apply(ctx, full, domain.ApplyInput{JobID: job.ID})
	require.NoError(t, err)
	require.NotNil(t, app.MatchScore)
	assert.InDelta(t, 100, *app.MatchScore, 0.001)

	none := f.signup(t, "none@uni.test", domain.RoleStudent)
	app, err = f.appUC.Apply(ctx, none, domain.ApplyInput{JobID: job.ID})
	require.NoError(t, err)
	require.NotNil(t, app.MatchScore)
	assert.Zero(t, *app.MatchScore)

	stored, err := f.apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MatchScore)
	assert.Zero(t, *stored.MatchScore)
}

func TestSkillScorer(t *testing.T) {
	ctx := context.Background()
	scorer := usecase.NewSkillScorer()

	t.Run("complete profile scores full marks", func(t *testing.T) {
		user := &domain.User{
			Skills:         []string{"Go", "SQL", "Docker", "Kubernetes", "Linux"},
			Bio:            strPtr("Backend developer"),
			University:     strPtr("TU Berlin"),
			Major:          strPtr("Computer Science"),
			GraduationYear: strPtr("2026"),
			GithubURL:      strPtr("https://github.com/student"),
			LinkedinURL:    strPtr("https://linkedin.com/in/student"),
		}
		a, err := scorer.ScoreProfile(ctx, user, &domain.Resume{FileType: ".pdf"})
		require.NoError(t, err)
		assert.InDelta(t, 100, a.Score, 0.001)
		assert.Empty(t, a.Weaknesses)
		assert.Empty(t, a.Recommendations)
	})

	t.Run("empty profile scores zero", func(t *testing.T) {
		a, err := scorer.ScoreProfile(ctx, &domain.User{}, &domain.Resume{FileType: ".txt"})
		require.NoError(t, err)
		assert.Zero(t, a.Score)
		assert.Empty(t, a.Strengths)
		assert.NotNil(t, a.Strengths)
	})

	t.Run("skills match whole words only", func(t *testing.T) {
		job := &domain.Job{Requirements: []string{"Google Cloud", "3+ years of Go", "go"}}
		a, err := scorer.MatchJob(ctx, &domain.User{Skills: []string{"Go"}}, job)
		require.NoError(t, err)
		assert.InDelta(t, 66.7, a.Score, 0.001)
		assert.Equal(t, []string{"Google Cloud"}, a.MissingSkills)
	})

	t.Run("job without requirements is a full match", func(t *testing.T) {
		a, err := scorer.MatchJob(ctx, &domain.User{}, &domain.Job{})
		require.NoError(t, err)
		assert.InDelta(t, 100, a.Score, 0.001)
		assert.Empty(t, a.MissingSkills)
	})
}
