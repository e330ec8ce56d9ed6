package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const auditColumns = `
	id, label, resume_source, resume_hash, job_source, job_hash,
	match_score, ats_score, missing_keywords, summary, tier,
	keyword_score, similarity, created_at`

// CreateAudit inserts a new audit
func (db *DB) CreateAudit(ctx context.Context, a *Audit) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.MissingKeywords == nil {
		a.MissingKeywords = []string{}
	}

	missing, err := json.Marshal(a.MissingKeywords)
	if err != nil {
		return fmt.Errorf("failed to encode missing keywords: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO audits (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, NullString(a.Label), a.ResumeSource, a.ResumeHash, a.JobSource, a.JobHash,
		a.MatchScore, a.ATSScore, string(missing), a.Summary, a.Tier,
		a.KeywordScore, a.Similarity, a.CreatedAt,
	)
	return err
}

// GetAudit retrieves an audit by ID
func (db *DB) GetAudit(ctx context.Context, id string) (*Audit, error) {
	row := db.QueryRowContext(ctx, `SELECT `+auditColumns+` FROM audits WHERE id = ?`, id)
	a, err := scanAudit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
	}
	return a, err
}

// LatestAudit retrieves the most recent audit
func (db *DB) LatestAudit(ctx context.Context) (*Audit, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+auditColumns+` FROM audits
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`)
	a, err := scanAudit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAuditNotFound
	}
	return a, err
}

// ResolveAudit looks an audit up by "last", a full ID, or a unique ID prefix
func (db *DB) ResolveAudit(ctx context.Context, ref string) (*Audit, error) {
	if ref == "" {
		return nil, fmt.Errorf("audit reference is required")
	}
	if strings.EqualFold(ref, "last") {
		return db.LatestAudit(ctx)
	}

	a, err := db.GetAudit(ctx, ref)
	if err == nil || !errors.Is(err, ErrAuditNotFound) {
		return a, err
	}

	// Literal prefix comparison; LIKE would treat _ and % in ref as wildcards
	rows, err := db.QueryContext(ctx, `
		SELECT `+auditColumns+` FROM audits WHERE substr(id, 1, length(?)) = ? LIMIT 2
	`, ref, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches, err := scanAudits(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous audit id prefix: %s", ref)
	}
}

// ListAudits retrieves audits with optional filters, newest first
func (db *DB) ListAudits(ctx context.Context, opts ListOptions) ([]Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE 1=1`
	args := []interface{}{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}
	if opts.Tier != nil {
		query += " AND tier = ?"
		args = append(args, *opts.Tier)
	}
	if opts.MinATS != nil {
		query += " AND ats_score >= ?"
		args = append(args, *opts.MinATS)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAudits(rows)
}

// SearchAudits finds audits whose label or document sources contain query
func (db *DB) SearchAudits(ctx context.Context, query string) ([]Audit, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := db.QueryContext(ctx, `
		SELECT `+auditColumns+` FROM audits
		WHERE LOWER(COALESCE(label, '')) LIKE ?
		   OR LOWER(resume_source) LIKE ?
		   OR LOWER(job_source) LIKE ?
		ORDER BY created_at DESC, rowid DESC
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAudits(rows)
}

// DeleteAudit removes an audit by ID
func (db *DB) DeleteAudit(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM audits WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrAuditNotFound, id)
	}
	return nil
}

// PruneAudits keeps the newest keep audits and deletes the rest.
// It returns the number of deleted rows.
func (db *DB) PruneAudits(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative: %d", keep)
	}

	var deleted int64
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM audits WHERE id NOT IN (
				SELECT id FROM audits ORDER BY created_at DESC, rowid DESC LIMIT ?
			)
		`, keep)
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	return int(deleted), err
}

// GetStats computes aggregate statistics, optionally since a given time
func (db *DB) GetStats(ctx context.Context, since *time.Time) (*Stats, error) {
	where := ""
	args := []interface{}{}
	if since != nil {
		where = " WHERE created_at >= ?"
		args = append(args, *since)
	}

	stats := &Stats{ByTier: make(map[string]int)}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(match_score), 0), COALESCE(AVG(ats_score), 0), COALESCE(MAX(ats_score), 0)
		FROM audits`+where, args...).Scan(
		&stats.TotalAudits, &stats.AvgMatchScore, &stats.AvgATSScore, &stats.BestATSScore,
	)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT tier, COUNT(*) FROM audits`+where+` GROUP BY tier`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		stats.ByTier[tier] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.TopMissing, err = db.topMissing(ctx, where, args, 10)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// topMissing counts how many audits reported each missing keyword
func (db *DB) topMissing(ctx context.Context, where string, args []interface{}, limit int) ([]KeywordCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT missing_keywords FROM audits`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var keywords []string
		if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
			return nil, fmt.Errorf("failed to decode missing keywords: %w", err)
		}
		for _, k := range keywords {
			counts[k]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	top := make([]KeywordCount, 0, len(counts))
	for k, n := range counts {
		top = append(top, KeywordCount{Keyword: k, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Keyword < top[j].Keyword
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*Audit, error) {
	a := &Audit{}
	var label sql.NullString
	var missing string

	err := row.Scan(
		&a.ID, &label, &a.ResumeSource, &a.ResumeHash, &a.JobSource, &a.JobHash,
		&a.MatchScore, &a.ATSScore, &missing, &a.Summary, &a.Tier,
		&a.KeywordScore, &a.Similarity, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Label = StringPtr(label)
	if err := json.Unmarshal([]byte(missing), &a.MissingKeywords); err != nil {
		return nil, fmt.Errorf("failed to decode missing keywords: %w", err)
	}
	if a.MissingKeywords == nil {
		a.MissingKeywords = []string{}
	}
	return a, nil
}

func scanAudits(rows *sql.Rows) ([]Audit, error) {
	audits := []Audit{}
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, *a)
	}
	return audits, rows.Err()
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
