package postgres

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const analysisColumns = `id, resume_id, job_id, overall_score, match_score, strengths, weaknesses,
	missing_skills, recommendations, analysis_version, analyzed_at`

type analysisRepo struct {
	db *pgxpool.Pool
}

func NewResumeAnalysisRepository(db *pgxpool.Pool) domain.ResumeAnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.ResumeAnalysis) error {
	if _, err := uuid.Parse(a.ResumeID); err != nil {
		return apperror.NotFound("Resume not found")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO resume_analyses (id, resume_id, job_id, overall_score, match_score, strengths, weaknesses,
			missing_skills, recommendations, analysis_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING analyzed_at`,
		a.ID, a.ResumeID, a.JobID, a.OverallScore, a.MatchScore,
		pq.Array(orEmpty(a.Strengths)), pq.Array(orEmpty(a.Weaknesses)),
		pq.Array(orEmpty(a.MissingSkills)), pq.Array(orEmpty(a.Recommendations)), a.AnalysisVersion,
	).Scan(&a.AnalyzedAt)
	return mapError(err, "Resume analysis")
}

func (r *analysisRepo) ListByResumeID(ctx context.Context, resumeID string) ([]domain.ResumeAnalysis, error) {
	if _, err := uuid.Parse(resumeID); err != nil {
		return []domain.ResumeAnalysis{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+analysisColumns+` FROM resume_analyses
		WHERE resume_id = $1 ORDER BY analyzed_at DESC`, resumeID)
	if err != nil {
		return nil, mapError(err, "Resume analysis")
	}
	defer rows.Close()

	analyses := []domain.ResumeAnalysis{}
	for rows.Next() {
		var a domain.ResumeAnalysis
		if err := rows.Scan(
			&a.ID, &a.ResumeID, &a.JobID, &a.OverallScore, &a.MatchScore,
			pq.Array(&a.Strengths), pq.Array(&a.Weaknesses), pq.Array(&a.MissingSkills), pq.Array(&a.Recommendations),
			&a.AnalysisVersion, &a.AnalyzedAt,
		); err != nil {
			return nil, mapError(err, "Resume analysis")
		}
		analyses = append(analyses, a)
	}
	return analyses, mapError(rows.Err(), "Resume analysis")
}
