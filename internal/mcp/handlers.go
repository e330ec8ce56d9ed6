package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/auditor"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/document"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

const defaultListLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["analyze_resume"] = s.handleAnalyzeResume
	s.handlers["extract_keywords"] = s.handleExtractKeywords
	s.handlers["list_audits"] = s.handleListAudits
	s.handlers["search_audits"] = s.handleSearchAudits
	s.handlers["get_audit"] = s.handleGetAudit
	s.handlers["get_stats"] = s.handleGetStats
}

// decodeParams unmarshals optional tool arguments into v
func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func sinceDays(days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := time.Now().AddDate(0, 0, -days)
	return &t
}

type analyzeResumeParams struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	Label          string `json:"label"`
	Save           *bool  `json:"save"`
	Detailed       bool   `json:"detailed"`
}

func (s *Server) handleAnalyzeResume(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p analyzeResumeParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	// Inline text goes through the same size and encoding checks as files
	resume, err := document.Read("resume_text", strings.NewReader(p.ResumeText), s.config.Documents.MaxBytes)
	if err != nil {
		return nil, err
	}
	job, err := document.Read("job_description", strings.NewReader(p.JobDescription), s.config.Documents.MaxBytes)
	if err != nil {
		return nil, err
	}

	report, err := s.auditor.Run(ctx, auditor.Request{
		Label:  strings.TrimSpace(p.Label),
		Resume: resume,
		Job:    job,
		NoSave: p.Save != nil && !*p.Save,
	})
	if err != nil {
		if errors.Is(err, document.ErrEmptyDocument) {
			return nil, fmt.Errorf("%w: resume_text and job_description must both contain text", err)
		}
		return nil, err
	}

	if p.Detailed {
		return report, nil
	}
	return report.Result(), nil
}

type extractKeywordsParams struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

type extractKeywordsResult struct {
	Keywords []string `json:"keywords"`
}

func (s *Server) handleExtractKeywords(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p extractKeywordsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.Text) == "" {
		return nil, fmt.Errorf("text: %w", document.ErrEmptyDocument)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = analysis.KeywordLimit
	}

	return extractKeywordsResult{Keywords: analysis.ExtractKeywords(p.Text, limit)}, nil
}

type listAuditsParams struct {
	Tier      string `json:"tier"`
	MinATS    int    `json:"min_ats"`
	SinceDays int    `json:"since_days"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleListAudits(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listAuditsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.ListOptions{
		Since: sinceDays(p.SinceDays),
		Limit: defaultListLimit,
	}

	if p.Tier != "" && p.Tier != "all" {
		opts.Tier = &p.Tier
	}
	if p.MinATS > 0 {
		opts.MinATS = &p.MinATS
	}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	audits, err := s.db.ListAudits(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return audits, nil
}

type searchParams struct {
	Query string `json:"query"`
}

func (s *Server) handleSearchAudits(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p searchParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	results, err := s.db.SearchAudits(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}

	return results, nil
}

type getAuditParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetAudit(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getAuditParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	audit, err := s.db.ResolveAudit(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return audit, nil
}

type getStatsParams struct {
	SinceDays int `json:"since_days"`
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getStatsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	stats, err := s.db.GetStats(ctx, sinceDays(p.SinceDays))
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriLast:
		return s.getResourceLast(ctx)
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriRecent:
		return s.getResourceRecent(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceLast(ctx context.Context) (string, error) {
	audit, err := s.db.LatestAudit(ctx)
	if errors.Is(err, database.ErrAuditNotFound) {
		return "No audits yet. Call analyze_resume first.\n", nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", output.Snapshot(audit))
	fmt.Fprintf(&b, "Audit:   %s (%s)\n", audit.ID, audit.DisplayName())
	fmt.Fprintf(&b, "Tier:    %s\n", audit.Tier)
	if len(audit.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "Missing: %s\n", strings.Join(audit.MissingKeywords, ", "))
	}
	fmt.Fprintf(&b, "Summary: %s\n", audit.Summary)
	return b.String(), nil
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Resume Audit Summary\n====================\n")
	fmt.Fprintf(&b, "Total audits: %d\n", stats.TotalAudits)
	if stats.TotalAudits == 0 {
		return b.String(), nil
	}

	fmt.Fprintf(&b, "  - Strong:       %d\n", stats.ByTier[string(analysis.TierStrong)])
	fmt.Fprintf(&b, "  - Moderate:     %d\n", stats.ByTier[string(analysis.TierModerate)])
	fmt.Fprintf(&b, "  - Low:          %d\n", stats.ByTier[string(analysis.TierLow)])
	fmt.Fprintf(&b, "  - Insufficient: %d\n", stats.ByTier[string(analysis.TierInsufficient)])
	fmt.Fprintf(&b, "\nAverage match score: %.1f%%\n", stats.AvgMatchScore)
	fmt.Fprintf(&b, "Average ATS score:   %.1f%%\n", stats.AvgATSScore)
	fmt.Fprintf(&b, "Best ATS score:      %d%%\n", stats.BestATSScore)

	if len(stats.TopMissing) > 0 {
		b.WriteString("\nMost often missing:\n")
		for _, k := range stats.TopMissing {
			fmt.Fprintf(&b, "  - %s (%d)\n", k.Keyword, k.Count)
		}
	}

	return b.String(), nil
}

func (s *Server) getResourceRecent(ctx context.Context) (string, error) {
	audits, err := s.db.ListAudits(ctx, database.ListOptions{Limit: 10})
	if err != nil {
		return "", err
	}

	result := "Recent Audits (Last 10)\n=======================\n\n"

	if len(audits) == 0 {
		result += "No audits yet. Run 'atsmatch analyze' or call analyze_resume.\n"
		return result, nil
	}

	for _, a := range audits {
		result += fmt.Sprintf("- %s | %s | %s | %d day(s) ago\n",
			a.DisplayName(), output.Snapshot(&a), a.Tier, a.DaysSince())
	}

	return result, nil
}
