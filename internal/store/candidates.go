package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clipscout/internal/candidate"
	"clipscout/internal/services"
)

const candidateColumns = "id, url, username, video_path, icon_path, status, memo, gender, contact_status, has_referrer, referrer_name, referrer_memo, created_at, updated_at"

// List returns every candidate ordered by creation time, then id.
func (s *Store) List(ctx context.Context) ([]candidate.Candidate, error) {
	return s.query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at, id`)
}

// ListByStatus returns candidates with the given status in creation order.
func (s *Store) ListByStatus(ctx context.Context, status candidate.Status) ([]candidate.Candidate, error) {
	return s.query(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE status = ? ORDER BY created_at, id`, string(status))
}

// GetByID fetches a candidate by identifier. Missing rows return nil.
func (s *Store) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	c, err := s.queryOne(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// GetByURL returns the earliest candidate with url. Missing rows return nil.
func (s *Store) GetByURL(ctx context.Context, url string) (*candidate.Candidate, error) {
	c, err := s.queryOne(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE url = ? ORDER BY created_at, id LIMIT 1`,
		strings.TrimSpace(url),
	)
	if err != nil {
		return nil, fmt.Errorf("get candidate by url: %w", err)
	}
	return c, nil
}

// Insert assigns an id and timestamps and stores a new unreviewed candidate.
func (s *Store) Insert(ctx context.Context, fields candidate.NewCandidate) (*candidate.Candidate, error) {
	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	now := s.clock().UTC()
	c := candidate.Candidate{
		ID:           id,
		URL:          strings.TrimSpace(fields.URL),
		Username:     fields.Username,
		VideoPath:    fields.VideoPath,
		IconPath:     fields.IconPath,
		Status:       candidate.StatusUnreviewed,
		Memo:         fields.Memo,
		Gender:       fields.Gender,
		HasReferrer:  fields.HasReferrer,
		ReferrerName: fields.ReferrerName,
		ReferrerMemo: fields.ReferrerMemo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.insertRecord(ctx, candidate.ToRecord(c)); err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return &c, nil
}

// Restore inserts c as-is, keeping its id and timestamps.
func (s *Store) Restore(ctx context.Context, c candidate.Candidate) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: restore requires an id", services.ErrValidation)
	}
	if c.Status == "" {
		c.Status = candidate.StatusUnreviewed
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	if err := s.insertRecord(ctx, candidate.ToRecord(c)); err != nil {
		return fmt.Errorf("restore candidate %s: %w", c.ID, err)
	}
	return nil
}

// RestoreBatch inserts cs in one transaction. Either every row lands or none.
func (s *Store) RestoreBatch(ctx context.Context, cs []candidate.Candidate) error {
	if len(cs) == 0 {
		return nil
	}
	records := make([]candidate.Record, 0, len(cs))
	for _, c := range cs {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("%w: restore requires an id", services.ErrValidation)
		}
		if c.Status == "" {
			c.Status = candidate.StatusUnreviewed
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		records = append(records, candidate.ToRecord(c))
	}

	ctx = ensureContext(ctx)
	query := s.rebind(`INSERT INTO candidates (` + candidateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		for _, r := range records {
			if _, err := tx.ExecContext(ctx, query, recordArgs(r)...); err != nil {
				return fmt.Errorf("candidate %s: %w", r.ID, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("restore batch: %w", err)
	}
	return nil
}

func recordArgs(r candidate.Record) []any {
	return []any{
		r.ID, r.URL, r.Username, r.VideoPath, r.IconPath, r.Status,
		nullableString(r.Memo), nullableString(r.Gender), nullableString(r.ContactStatus),
		nullableBool(r.HasReferrer), nullableString(r.ReferrerName), nullableString(r.ReferrerMemo),
		r.CreatedAt, r.UpdatedAt,
	}
}

func (s *Store) insertRecord(ctx context.Context, r candidate.Record) error {
	_, err := s.execWithRetry(ctx,
		`INSERT INTO candidates (`+candidateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordArgs(r)...,
	)
	return err
}

// Update applies patch to the candidate in one transaction and refreshes
// updated_at. Missing rows return nil.
func (s *Store) Update(ctx context.Context, id string, patch candidate.Patch) (*candidate.Candidate, error) {
	ctx = ensureContext(ctx)
	var updated *candidate.Candidate
	err := retryOnBusy(ctx, func() error {
		updated = nil
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin update tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		row := tx.QueryRowContext(ctx, s.rebind(`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`), id)
		current, err := scanCandidate(row)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		next, err := current.Apply(patch)
		if err != nil {
			return err
		}
		next.UpdatedAt = s.clock().UTC()
		r := candidate.ToRecord(next)

		if _, err := tx.ExecContext(ctx, s.rebind(
			`UPDATE candidates SET status = ?, contact_status = ?, memo = ?, updated_at = ? WHERE id = ?`),
			r.Status, nullableString(r.ContactStatus), nullableString(r.Memo), r.UpdatedAt, id,
		); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	return updated, nil
}

// Delete removes a candidate and reports whether a row existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete candidate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete candidate rows affected: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored candidates.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]candidate.Candidate, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func (s *Store) queryOne(ctx context.Context, query string, args ...any) (*candidate.Candidate, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), s.rebind(query), args...)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}
