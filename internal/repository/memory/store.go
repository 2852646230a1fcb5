// Package memory implements the repository contracts over mutex-guarded maps.
// It honours the same uniqueness constraints and atomic counter updates as
// the postgres implementation and backs the usecase and HTTP tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"careerai-backend/internal/domain"

	"github.com/google/uuid"
)

// Store is the shared state behind every memory repository. One lock covers
// all tables so multi-table writes are atomic.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users        map[string]*row[domain.User]
	jobs         map[string]*row[domain.Job]
	applications map[string]*row[domain.Application]
	resumes      map[string]*row[domain.Resume]
	interviews   map[string]*row[domain.InterviewResult]
	analyses     map[string]*row[domain.ResumeAnalysis]

	// Unavailable, when set, is returned by every call.
	Unavailable error
}

type row[T any] struct {
	seq int64
	v   T
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        make(map[string]*row[domain.User]),
		jobs:         make(map[string]*row[domain.Job]),
		applications: make(map[string]*row[domain.Application]),
		resumes:      make(map[string]*row[domain.Resume]),
		interviews:   make(map[string]*row[domain.InterviewResult]),
		analyses:     make(map[string]*row[domain.ResumeAnalysis]),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID() string {
	return uuid.NewString()
}

// newestFirst orders rows by descending insertion sequence.
func newestFirst[T any](rows []*row[T]) []T {
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneMaps(in []map[string]any) []map[string]any {
	if in == nil {
		return nil
	}
	out := make([]map[string]any, len(in))
	for i, m := range in {
		c := make(map[string]any, len(m))
		for k, v := range m {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

func cloneUser(u domain.User) *domain.User {
	u.Skills = cloneStrings(u.Skills)
	return &u
}

func cloneJob(j domain.Job) *domain.Job {
	j.Requirements = cloneStrings(j.Requirements)
	return &j
}

func cloneInterview(r domain.InterviewResult) *domain.InterviewResult {
	r.Questions = cloneMaps(r.Questions)
	r.Answers = cloneMaps(r.Answers)
	r.StrengthsObserved = cloneStrings(r.StrengthsObserved)
	r.WeaknessesObserved = cloneStrings(r.WeaknessesObserved)
	r.SkillsToImprove = cloneStrings(r.SkillsToImprove)
	r.QuestionWiseAnalysis = cloneMaps(r.QuestionWiseAnalysis)
	r.QuestionScores = cloneMaps(r.QuestionScores)
	return &r
}

func cloneAnalysis(a domain.ResumeAnalysis) *domain.ResumeAnalysis {
	if a.JobID != nil {
		id := *a.JobID
		a.JobID = &id
	}
	if a.MatchScore != nil {
		score := *a.MatchScore
		a.MatchScore = &score
	}
	a.Strengths = cloneStrings(a.Strengths)
	a.Weaknesses = cloneStrings(a.Weaknesses)
	a.MissingSkills = cloneStrings(a.MissingSkills)
	a.Recommendations = cloneStrings(a.Recommendations)
	return &a
}

// deleteResumeCascade removes a resume with its analyses. Callers hold the
// write lock.
func (s *Store) deleteResumeCascade(id string) {
	delete(s.resumes, id)
	for aID, a := range s.analyses {
		if a.v.ResumeID == id {
			delete(s.analyses, aID)
		}
	}
}

// decrementApplicants lowers a job's counter by n, floored at zero.
// Callers hold the write lock.
func (s *Store) decrementApplicants(jobID string, n int) {
	if j, ok := s.jobs[jobID]; ok {
		j.v.ApplicantCount -= n
		if j.v.ApplicantCount < 0 {
			j.v.ApplicantCount = 0
		}
	}
}

// deleteApplicationCascade removes an application and its interview results.
// Callers hold the write lock.
func (s *Store) deleteApplicationCascade(id string) {
	delete(s.applications, id)
	for irID, ir := range s.interviews {
		if ir.v.ApplicationID == id {
			delete(s.interviews, irID)
		}
	}
}
