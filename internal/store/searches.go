package store

import (
	"context"
	"database/sql"
	"time"

	"leadgen-engine/internal/domain"
)

func CreateSearch(ctx context.Context, db *sql.DB, s domain.Search) (domain.Search, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO searches(url, domain, keyword, locality, lat, lng, created_at)
VALUES(?,?,?,?,?,?,?);`,
		s.URL, s.Domain, s.Keyword, s.Locality, s.Lat, s.Lng,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.Search{}, err
	}
	s.ID, _ = res.LastInsertId()
	return s, nil
}

func GetSearch(ctx context.Context, db *sql.DB, id int64) (domain.Search, error) {
	var s domain.Search
	var created string
	err := db.QueryRowContext(ctx, `
SELECT id, url, domain, keyword, locality, lat, lng, created_at
FROM searches WHERE id = ?;`, id).
		Scan(&s.ID, &s.URL, &s.Domain, &s.Keyword, &s.Locality, &s.Lat, &s.Lng, &created)
	if err != nil {
		return domain.Search{}, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return s, nil
}

// LatestSearch returns the most recent search, or sql.ErrNoRows.
func LatestSearch(ctx context.Context, db *sql.DB) (domain.Search, error) {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT id FROM searches ORDER BY id DESC LIMIT 1;`).Scan(&id)
	if err != nil {
		return domain.Search{}, err
	}
	return GetSearch(ctx, db, id)
}

// DeleteExpired removes searches older than ttl; their leads go with
// them via ON DELETE CASCADE. Returns how many searches were swept.
func DeleteExpired(ctx context.Context, db *sql.DB, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339)

	// CASCADE needs foreign_keys on for this connection.
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM searches WHERE created_at < ?;`, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
