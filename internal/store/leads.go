package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/webutil"
)

// InsertLeadIfNew stores the lead unless the search already has a row
// for the same website (or place id). Returns the stored lead and
// whether a new row was created.
func InsertLeadIfNew(ctx context.Context, db *sql.DB, l domain.Lead) (domain.Lead, bool, error) {
	if l.SearchID == 0 {
		return domain.Lead{}, false, errors.New("lead missing search id")
	}
	if l.Name == "" {
		return domain.Lead{}, false, errors.New("lead missing name")
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO leads(
  search_id, place_id, name, address, phone, website, website_key,
  email, owner_name, locality, lat, lng, rating, rating_count,
  maps_url, insight, created_at
) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		l.SearchID, l.PlaceID, l.Name, l.Address, l.Phone, l.Website,
		webutil.NormalizeWebsite(l.Website),
		l.Email, l.OwnerName, l.Locality, l.Lat, l.Lng, l.Rating, l.RatingCount,
		l.MapsURL, l.Insight, l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.Lead{}, false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.Lead{}, false, nil
	}
	l.ID, _ = res.LastInsertId()
	return l, true, nil
}

const leadCols = `
id, search_id, place_id, name, address, phone, website,
email, owner_name, locality, lat, lng, rating, rating_count,
maps_url, insight, created_at`

func scanLead(rows interface{ Scan(...any) error }) (domain.Lead, error) {
	var l domain.Lead
	var created string
	err := rows.Scan(
		&l.ID, &l.SearchID, &l.PlaceID, &l.Name, &l.Address, &l.Phone, &l.Website,
		&l.Email, &l.OwnerName, &l.Locality, &l.Lat, &l.Lng, &l.Rating, &l.RatingCount,
		&l.MapsURL, &l.Insight, &created,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return l, nil
}

func ListLeads(ctx context.Context, db *sql.DB, searchID int64) ([]domain.Lead, error) {
	rows, err := db.QueryContext(ctx, `
SELECT `+leadCols+` FROM leads WHERE search_id = ? ORDER BY id;`, searchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetLeads loads the given leads, restricted to one search so a
// selection can never pull rows out of someone else's session.
func GetLeads(ctx context.Context, db *sql.DB, searchID int64, ids []int64) ([]domain.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ph := strings.Repeat("?,", len(ids))
	ph = ph[:len(ph)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, searchID)
	for _, id := range ids {
		args = append(args, id)
	}

	q := fmt.Sprintf(`SELECT %s FROM leads WHERE search_id = ? AND id IN (%s) ORDER BY id;`, leadCols, ph)
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SetContact fills in enrichment results; empty fields are written as
// empty (absent stays absent, never fabricated).
func SetContact(ctx context.Context, db *sql.DB, leadID int64, email, ownerName string) error {
	_, err := db.ExecContext(ctx, `
UPDATE leads SET email = ?, owner_name = ? WHERE id = ?;`, email, ownerName, leadID)
	return err
}

func SetInsight(ctx context.Context, db *sql.DB, leadID int64, insight string) error {
	_, err := db.ExecContext(ctx, `
UPDATE leads SET insight = ? WHERE id = ?;`, insight, leadID)
	return err
}
