package database

import (
	"errors"
	"time"
)

// ErrAuditNotFound is returned when an audit lookup has no match
var ErrAuditNotFound = errors.New("audit not found")

// Audit is one stored résumé/job description comparison
type Audit struct {
	ID              string    `json:"id"`
	Label           *string   `json:"label,omitempty"`
	ResumeSource    string    `json:"resume_source"`
	ResumeHash      string    `json:"resume_hash"`
	JobSource       string    `json:"job_source"`
	JobHash         string    `json:"job_hash"`
	MatchScore      int       `json:"match_score"`
	ATSScore        int       `json:"ats_score"`
	MissingKeywords []string  `json:"missing_keywords"`
	Summary         string    `json:"summary"`
	Tier            string    `json:"tier"`
	KeywordScore    float64   `json:"keyword_score"`
	Similarity      float64   `json:"similarity"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayName returns the label, or the job source when no label was given
func (a *Audit) DisplayName() string {
	if a.Label != nil && *a.Label != "" {
		return *a.Label
	}
	return a.JobSource
}

// DaysSince returns the number of days since the audit ran
func (a *Audit) DaysSince() int {
	return int(time.Since(a.CreatedAt).Hours() / 24)
}

// ListOptions contains options for listing audits
type ListOptions struct {
	Since  *time.Time
	Tier   *string
	MinATS *int
	Limit  int
	Offset int
}

// Stats represents aggregate statistics over stored audits
type Stats struct {
	TotalAudits   int            `json:"total_audits"`
	AvgMatchScore float64        `json:"avg_match_score"`
	AvgATSScore   float64        `json:"avg_ats_score"`
	BestATSScore  int            `json:"best_ats_score"`
	ByTier        map[string]int `json:"by_tier"`
	TopMissing    []KeywordCount `json:"top_missing"`
}

// KeywordCount is a keyword with the number of audits that reported it missing
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
