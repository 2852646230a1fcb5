package domain

import (
	"context"
	"time"
)

// InterviewResult is a scored interview evaluation attached to an application.
// Results are append-only: saving twice for one application keeps both.
type InterviewResult struct {
	ID                   string           `json:"id"`
	ApplicationID        string           `json:"application_id"`
	InterviewDate        time.Time        `json:"interview_date"`
	JobTitle             string           `json:"job_title"`
	Questions            []map[string]any `json:"questions"`
	Answers              []map[string]any `json:"answers"`
	TechnicalScore       float64          `json:"technical_score"`
	CommunicationScore   float64          `json:"communication_score"`
	ConfidenceLevel      string           `json:"confidence_level"`
	OverallScore         float64          `json:"overall_score"`
	StrengthsObserved    []string         `json:"strengths_observed"`
	WeaknessesObserved   []string         `json:"weaknesses_observed"`
	SkillsToImprove      []string         `json:"skills_to_improve"`
	ReadinessLevel       string           `json:"readiness_level"`
	QuestionWiseAnalysis []map[string]any `json:"question_wise_analysis"`
	QuestionScores       []map[string]any `json:"question_scores"`
	HiringRecommendation string           `json:"hiring_recommendation"`
	DetailedFeedback     *string          `json:"detailed_feedback,omitempty"`
}

// SaveInterviewInput is the payload posted after an interview session.
type SaveInterviewInput struct {
	ApplicationID        string           `json:"application_id" binding:"required"`
	JobTitle             string           `json:"job_title" binding:"required,max=200"`
	Questions            []map[string]any `json:"questions"`
	Answers              []map[string]any `json:"answers"`
	TechnicalScore       float64          `json:"technical_score" binding:"gte=0,lte=100"`
	CommunicationScore   float64          `json:"communication_score" binding:"gte=0,lte=100"`
	ConfidenceLevel      string           `json:"confidence_level" binding:"required,max=50"`
	OverallScore         float64          `json:"overall_score" binding:"gte=0,lte=100"`
	StrengthsObserved    []string         `json:"strengths_observed"`
	WeaknessesObserved   []string         `json:"weaknesses_observed"`
	SkillsToImprove      []string         `json:"skills_to_improve"`
	ReadinessLevel       string           `json:"readiness_level" binding:"required,max=50"`
	QuestionWiseAnalysis []map[string]any `json:"question_wise_analysis"`
	QuestionScores       []map[string]any `json:"question_scores"`
	HiringRecommendation string           `json:"hiring_recommendation" binding:"required,max=50"`
	DetailedFeedback     *string          `json:"detailed_feedback"`
}

type InterviewRepository interface {
	Create(ctx context.Context, result *InterviewResult) error
	GetByID(ctx context.Context, id string) (*InterviewResult, error)
	// GetLatestByApplicationID returns the most recent result for the application.
	GetLatestByApplicationID(ctx context.Context, applicationID string) (*InterviewResult, error)
	ListByJobID(ctx context.Context, jobID string) ([]InterviewResult, error)
	ListByUserID(ctx context.Context, userID string) ([]InterviewResult, error)
	Delete(ctx context.Context, id string) error
}

type InterviewUsecase interface {
	Save(ctx context.Context, principal *User, in SaveInterviewInput) (*InterviewResult, error)
	GetForApplication(ctx context.Context, principal *User, applicationID string) (*InterviewResult, error)
	ListForJob(ctx context.Context, principal *User, jobID string) ([]InterviewResult, error)
	ListForStudent(ctx context.Context, principal *User, studentID string) ([]InterviewResult, error)
	Delete(ctx context.Context, principal *User, id string) error
}
