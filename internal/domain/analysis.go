package domain

import (
	"context"
	"time"
)

// ResumeAnalysis is one stored assessment of a resume, general or against a job.
// Rows are append-only; history returns them newest first.
type ResumeAnalysis struct {
	ID              string    `json:"id"`
	ResumeID        string    `json:"resume_id"`
	JobID           *string   `json:"job_id,omitempty"`
	OverallScore    float64   `json:"overall_score"`
	MatchScore      *float64  `json:"match_score,omitempty"`
	Strengths       []string  `json:"strengths"`
	Weaknesses      []string  `json:"weaknesses"`
	MissingSkills   []string  `json:"missing_skills"`
	Recommendations []string  `json:"recommendations"`
	AnalysisVersion string    `json:"analysis_version"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

// AnalysisHistory lists every analysis of one resume.
type AnalysisHistory struct {
	ResumeID      string           `json:"resume_id"`
	TotalAnalyses int              `json:"total_analyses"`
	Analyses      []ResumeAnalysis `json:"analyses"`
}

// Assessment is what a scorer returns. Score is on a 0-100 scale.
type Assessment struct {
	Score           float64
	Strengths       []string
	Weaknesses      []string
	MissingSkills   []string
	Recommendations []string
}

// ResumeScorer rates a student's profile on its own and against a job.
// Implementations may call out to a remote model; the bundled one is
// deterministic.
type ResumeScorer interface {
	Version() string
	ScoreProfile(ctx context.Context, user *User, resume *Resume) (*Assessment, error)
	MatchJob(ctx context.Context, user *User, job *Job) (*Assessment, error)
}

type ResumeAnalysisRepository interface {
	Create(ctx context.Context, analysis *ResumeAnalysis) error
	ListByResumeID(ctx context.Context, resumeID string) ([]ResumeAnalysis, error)
}

type AnalysisUsecase interface {
	AnalyzeResume(ctx context.Context, principal *User, resumeID string) (*ResumeAnalysis, error)
	MatchJob(ctx context.Context, principal *User, resumeID, jobID string) (*ResumeAnalysis, error)
	History(ctx context.Context, principal *User, resumeID string) (*AnalysisHistory, error)
}
