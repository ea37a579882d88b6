package store

import (
	"database/sql"

	"clipscout/internal/candidate"
)

func scanCandidate(scanner interface{ Scan(dest ...any) error }) (*candidate.Candidate, error) {
	var (
		r             candidate.Record
		memo          sql.NullString
		gender        sql.NullString
		contactStatus sql.NullString
		hasReferrer   sql.NullBool
		referrerName  sql.NullString
		referrerMemo  sql.NullString
	)
	if err := scanner.Scan(
		&r.ID, &r.URL, &r.Username, &r.VideoPath, &r.IconPath, &r.Status,
		&memo, &gender, &contactStatus, &hasReferrer, &referrerName, &referrerMemo,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Memo = stringPtr(memo)
	r.Gender = stringPtr(gender)
	r.ContactStatus = stringPtr(contactStatus)
	if hasReferrer.Valid {
		r.HasReferrer = &hasReferrer.Bool
	}
	r.ReferrerName = stringPtr(referrerName)
	r.ReferrerMemo = stringPtr(referrerMemo)

	c, err := r.Candidate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	return *value
}
