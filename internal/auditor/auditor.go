package auditor

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/document"
)

// Store is the persistence the auditor needs
type Store interface {
	CreateAudit(ctx context.Context, a *database.Audit) error
	PruneAudits(ctx context.Context, keep int) (int, error)
}

// Options configures an Auditor
type Options struct {
	Save bool // persist audits
	Keep int  // audits to retain after each save, 0 keeps everything
}

// Auditor runs the matching engine on loaded documents and records the outcome
type Auditor struct {
	store  Store
	opts   Options
	logger *charmlog.Logger
}

// New creates a new Auditor. store may be nil when Save is false.
func New(store Store, opts Options, logger *charmlog.Logger) *Auditor {
	return &Auditor{store: store, opts: opts, logger: logger}
}

// Request is one résumé/job description pair to score
type Request struct {
	Label  string
	Resume document.Document
	Job    document.Document
	NoSave bool // skip persistence for this request only
}

// Report is the outcome of a Run
type Report struct {
	Breakdown analysis.Breakdown `json:"breakdown"`
	Audit     *database.Audit    `json:"audit,omitempty"`
}

// Result returns the engine's MatchResult
func (r *Report) Result() analysis.MatchResult {
	return r.Breakdown.Result
}

// Run validates both documents, scores them, and stores the audit.
// Empty documents are rejected with document.ErrEmptyDocument before scoring.
func (a *Auditor) Run(ctx context.Context, req Request) (*Report, error) {
	if err := document.Require("resume", req.Resume); err != nil {
		return nil, err
	}
	if err := document.Require("job description", req.Job); err != nil {
		return nil, err
	}

	b := analysis.Explain(req.Resume.Text, req.Job.Text)
	a.logger.Debug("scored",
		"resume", req.Resume.Name,
		"job", req.Job.Name,
		"keywords", len(b.Keywords),
		"matched", len(b.Matched),
		"similarity", fmt.Sprintf("%.4f", b.Similarity),
		"ats", b.Result.ATSScore,
		"tier", b.Tier,
	)
	if b.Tier == analysis.TierInsufficient {
		a.logger.Warn("job description produced no keywords", "job", req.Job.Name)
	}

	report := &Report{Breakdown: b}
	if !a.opts.Save || req.NoSave || a.store == nil {
		return report, nil
	}

	audit := NewAudit(req, b)
	if err := a.store.CreateAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to save audit: %w", err)
	}
	report.Audit = audit
	a.logger.Info("audit saved", "id", audit.ID)

	if a.opts.Keep > 0 {
		pruned, err := a.store.PruneAudits(ctx, a.opts.Keep)
		if err != nil {
			// The audit is already stored; a failed prune only delays cleanup
			a.logger.Warn("failed to prune audit history", "err", err)
		} else if pruned > 0 {
			a.logger.Debug("pruned audit history", "deleted", pruned)
		}
	}

	return report, nil
}

// NewAudit converts a scored request into a storable audit
func NewAudit(req Request, b analysis.Breakdown) *database.Audit {
	audit := &database.Audit{
		ResumeSource:    req.Resume.Name,
		ResumeHash:      req.Resume.Fingerprint(),
		JobSource:       req.Job.Name,
		JobHash:         req.Job.Fingerprint(),
		MatchScore:      b.Result.MatchScore,
		ATSScore:        b.Result.ATSScore,
		MissingKeywords: b.Result.MissingKeywords,
		Summary:         b.Result.Summary,
		Tier:            string(b.Tier),
		KeywordScore:    b.KeywordScore,
		Similarity:      b.Similarity,
	}
	if req.Label != "" {
		label := req.Label
		audit.Label = &label
	}
	return audit
}
