package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const interviewColumns = `ir.id, ir.application_id, ir.interview_date, ir.job_title, ir.questions, ir.answers,
	ir.technical_score, ir.communication_score, ir.confidence_level, ir.overall_score,
	ir.strengths_observed, ir.weaknesses_observed, ir.skills_to_improve, ir.readiness_level,
	ir.question_wise_analysis, ir.question_scores, ir.hiring_recommendation, ir.detailed_feedback`

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

// jsonDoc is a JSONB column holding a list of objects.
type jsonDoc struct {
	raw []byte
}

func encodeDoc(v []map[string]any) (string, error) {
	if v == nil {
		v = []map[string]any{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode interview document: %w", err)
	}
	return string(b), nil
}

func (d jsonDoc) decode() ([]map[string]any, error) {
	out := []map[string]any{}
	if len(d.raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(d.raw, &out); err != nil {
		return nil, fmt.Errorf("decode interview document: %w", err)
	}
	return out, nil
}

func scanInterview(row pgx.Row) (*domain.InterviewResult, error) {
	var (
		ir                                     domain.InterviewResult
		questions, answers, analysis, qscores  jsonDoc
		strengths, weaknesses, skillsToImprove []string
	)
	err := row.Scan(
		&ir.ID, &ir.ApplicationID, &ir.InterviewDate, &ir.JobTitle, &questions.raw, &answers.raw,
		&ir.TechnicalScore, &ir.CommunicationScore, &ir.ConfidenceLevel, &ir.OverallScore,
		pq.Array(&strengths), pq.Array(&weaknesses), pq.Array(&skillsToImprove), &ir.ReadinessLevel,
		&analysis.raw, &qscores.raw, &ir.HiringRecommendation, &ir.DetailedFeedback,
	)
	if err != nil {
		return nil, err
	}
	for _, d := range []struct {
		src jsonDoc
		dst *[]map[string]any
	}{
		{questions, &ir.Questions},
		{answers, &ir.Answers},
		{analysis, &ir.QuestionWiseAnalysis},
		{qscores, &ir.QuestionScores},
	} {
		v, err := d.src.decode()
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}
	ir.StrengthsObserved = orEmpty(strengths)
	ir.WeaknessesObserved = orEmpty(weaknesses)
	ir.SkillsToImprove = orEmpty(skillsToImprove)
	return &ir, nil
}

// Create appends a result. Several results per application are kept.
func (r *interviewRepo) Create(ctx context.Context, result *domain.InterviewResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	docs := make([]string, 0, 4)
	for _, v := range [][]map[string]any{result.Questions, result.Answers, result.QuestionWiseAnalysis, result.QuestionScores} {
		d, err := encodeDoc(v)
		if err != nil {
			return apperror.Internal(err)
		}
		docs = append(docs, d)
	}

	query := `
		INSERT INTO interview_results (id, application_id, job_title, questions, answers,
			technical_score, communication_score, confidence_level, overall_score,
			strengths_observed, weaknesses_observed, skills_to_improve, readiness_level,
			question_wise_analysis, question_scores, hiring_recommendation, detailed_feedback)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9, $10, $11, $12, $13, $14::jsonb, $15::jsonb, $16, $17)
		RETURNING interview_date`

	err := r.db.QueryRow(ctx, query,
		result.ID, result.ApplicationID, result.JobTitle, docs[0], docs[1],
		result.TechnicalScore, result.CommunicationScore, result.ConfidenceLevel, result.OverallScore,
		pq.Array(orEmpty(result.StrengthsObserved)), pq.Array(orEmpty(result.WeaknessesObserved)),
		pq.Array(orEmpty(result.SkillsToImprove)), result.ReadinessLevel,
		docs[2], docs[3], result.HiringRecommendation, result.DetailedFeedback,
	).Scan(&result.InterviewDate)
	return mapError(err, "Interview result")
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Interview result not found")
	}
	ir, err := scanInterview(r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interview_results ir WHERE ir.id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Interview result")
	}
	return ir, nil
}

func (r *interviewRepo) GetLatestByApplicationID(ctx context.Context, applicationID string) (*domain.InterviewResult, error) {
	ir, err := scanInterview(r.db.QueryRow(ctx, `
		SELECT `+interviewColumns+` FROM interview_results ir
		WHERE ir.application_id = $1
		ORDER BY ir.interview_date DESC
		LIMIT 1`, applicationID))
	if err != nil {
		return nil, mapError(err, "Interview result")
	}
	return ir, nil
}

func (r *interviewRepo) ListByJobID(ctx context.Context, jobID string) ([]domain.InterviewResult, error) {
	return r.list(ctx, `
		SELECT `+interviewColumns+` FROM interview_results ir
		JOIN applications a ON a.id = ir.application_id
		WHERE a.job_id = $1
		ORDER BY ir.interview_date DESC`, jobID)
}

func (r *interviewRepo) ListByUserID(ctx context.Context, userID string) ([]domain.InterviewResult, error) {
	return r.list(ctx, `
		SELECT `+interviewColumns+` FROM interview_results ir
		JOIN applications a ON a.id = ir.application_id
		WHERE a.user_id = $1
		ORDER BY ir.interview_date DESC`, userID)
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Interview result not found")
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM interview_results WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "Interview result")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Interview result not found")
	}
	return nil
}

func (r *interviewRepo) list(ctx context.Context, query string, arg string) ([]domain.InterviewResult, error) {
	if _, err := uuid.Parse(arg); err != nil {
		return []domain.InterviewResult{}, nil
	}
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "Interview result")
	}
	defer rows.Close()

	results := []domain.InterviewResult{}
	for rows.Next() {
		ir, err := scanInterview(rows)
		if err != nil {
			return nil, mapError(err, "Interview result")
		}
		results = append(results, *ir)
	}
	return results, mapError(rows.Err(), "Interview result")
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
