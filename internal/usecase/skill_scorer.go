package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"careerai-backend/internal/domain"
)

const skillScorerVersion = "skills-1.0"

// minBroadSkills is the skill count that earns the full skills weight.
const minBroadSkills = 5

// skillScorer rates a profile by completeness and a job fit by how many of the
// job's requirements appear among the student's skills.
type skillScorer struct{}

func NewSkillScorer() domain.ResumeScorer {
	return skillScorer{}
}

func (skillScorer) Version() string {
	return skillScorerVersion
}

type profileCheck struct {
	weight   float64
	passes   func(u *domain.User, r *domain.Resume) bool
	strength string
	weakness string
	advice   string
}

var profileChecks = []profileCheck{
	{
		weight:   15,
		passes:   func(u *domain.User, _ *domain.Resume) bool { return filled(u.Bio) },
		strength: "Profile has a summary",
		weakness: "No profile summary",
		advice:   "Write a short bio describing your goals and strongest skills",
	},
	{
		weight:   15,
		passes:   func(u *domain.User, _ *domain.Resume) bool { return filled(u.University) && filled(u.Major) },
		strength: "Education details are complete",
		weakness: "Education details are incomplete",
		advice:   "Add your university and major",
	},
	{
		weight:   5,
		passes:   func(u *domain.User, _ *domain.Resume) bool { return filled(u.GraduationYear) },
		strength: "Graduation year is listed",
		weakness: "Graduation year is missing",
		advice:   "Add your expected graduation year",
	},
	{
		weight:   15,
		passes:   func(u *domain.User, _ *domain.Resume) bool { return filled(u.GithubURL) || filled(u.PortfolioURL) },
		strength: "Links to public work",
		weakness: "No portfolio or GitHub link",
		advice:   "Link a GitHub profile or portfolio with your projects",
	},
	{
		weight:   10,
		passes:   func(u *domain.User, _ *domain.Resume) bool { return filled(u.LinkedinURL) },
		strength: "LinkedIn profile is linked",
		weakness: "No LinkedIn profile",
		advice:   "Add your LinkedIn profile URL",
	},
	{
		weight: 10,
		passes: func(_ *domain.User, r *domain.Resume) bool {
			return r != nil && (r.FileType == ".pdf" || r.FileType == ".docx")
		},
		strength: "Resume is in a widely accepted format",
		weakness: "Resume is plain text or a legacy format",
		advice:   "Upload the resume as a PDF",
	},
}

// skillsWeight is what remains of 100 after profileChecks.
const skillsWeight = 30

func (skillScorer) ScoreProfile(ctx context.Context, user *domain.User, resume *domain.Resume) (*domain.Assessment, error) {
	a := newAssessment()

	skills := len(uniqueSkills(user.Skills))
	a.Score = skillsWeight * math.Min(float64(skills), minBroadSkills) / minBroadSkills
	if skills >= minBroadSkills {
		a.Strengths = append(a.Strengths, fmt.Sprintf("Lists %d distinct skills", skills))
	} else {
		a.Weaknesses = append(a.Weaknesses, fmt.Sprintf("Only %d skills listed", skills))
		a.Recommendations = append(a.Recommendations, "Add the languages and tools you have used to your skills")
	}

	for _, check := range profileChecks {
		if check.passes(user, resume) {
			a.Score += check.weight
			a.Strengths = append(a.Strengths, check.strength)
			continue
		}
		a.Weaknesses = append(a.Weaknesses, check.weakness)
		a.Recommendations = append(a.Recommendations, check.advice)
	}
	a.Score = roundScore(a.Score)
	return a, nil
}

// MatchJob scores the share of distinct job requirements covered by the
// student's skills. A job without requirements is a full match.
func (skillScorer) MatchJob(ctx context.Context, user *domain.User, job *domain.Job) (*domain.Assessment, error) {
	a := newAssessment()
	skills := uniqueSkills(user.Skills)

	required := 0
	seen := make(map[string]bool, len(job.Requirements))
	for _, req := range job.Requirements {
		key := normalizeSkill(req)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		required++
		label := strings.TrimSpace(req)
		if coversRequirement(skills, key) {
			a.Strengths = append(a.Strengths, "Has required skill: "+label)
		} else {
			a.MissingSkills = append(a.MissingSkills, label)
			a.Recommendations = append(a.Recommendations, "Build experience with "+label)
		}
	}

	if required == 0 {
		a.Score = 100
		return a, nil
	}
	matched := required - len(a.MissingSkills)
	a.Score = roundScore(100 * float64(matched) / float64(required))
	if len(a.MissingSkills) > 0 {
		a.Weaknesses = append(a.Weaknesses, fmt.Sprintf("Missing %d of %d listed requirements", len(a.MissingSkills), required))
	}
	return a, nil
}

func newAssessment() *domain.Assessment {
	return &domain.Assessment{
		Strengths:       []string{},
		Weaknesses:      []string{},
		MissingSkills:   []string{},
		Recommendations: []string{},
	}
}

// normalizeSkill lower-cases and turns list punctuation into single spaces.
func normalizeSkill(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(",", " ", ";", " ", "/", " ", "(", " ", ")", " ", ":", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func uniqueSkills(skills []string) map[string]bool {
	out := make(map[string]bool, len(skills))
	for _, s := range skills {
		if key := normalizeSkill(s); key != "" {
			out[key] = true
		}
	}
	return out
}

// coversRequirement matches a skill equal to the requirement or appearing in
// it as whole words, so "go" covers "3+ years of go" but not "google cloud".
func coversRequirement(skills map[string]bool, requirement string) bool {
	if skills[requirement] {
		return true
	}
	padded := " " + requirement + " "
	for skill := range skills {
		if strings.Contains(padded, " "+skill+" ") {
			return true
		}
	}
	return false
}

func filled(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
