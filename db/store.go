// Package db provides the segment lookup store backed by SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"phonegen/core/model"
	"phonegen/internal/errors"
)

// SegmentStore resolves filter parameters into matched segment records. The
// engine treats it as a black-box, side-effect-free query source.
type SegmentStore interface {
	// FindSegments returns the segments matching prefix, province, city and,
	// when non-empty, the operator codes.
	FindSegments(ctx context.Context, prefix, province, city string, operators []int) ([]model.SegmentRecord, error)

	// Provinces returns the distinct provinces, ordered.
	Provinces(ctx context.Context) ([]string, error)

	// Cities returns the distinct cities of a province, ordered.
	Cities(ctx context.Context, province string) ([]string, error)

	// Close releases the underlying database handle.
	Close() error
}

// SQLiteStore implements SegmentStore over a phone_location SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Database("open database", err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY under concurrent lookups.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// DB exposes the raw handle for the ingestion pipeline.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FindSegments returns the segments matching prefix, province, city and,
// when non-empty, the operator codes.
func (s *SQLiteStore) FindSegments(ctx context.Context, prefix, province, city string, operators []int) ([]model.SegmentRecord, error) {
	query := "SELECT prefix, suffix, province, city, operator FROM phone_location WHERE prefix = ? AND province = ? AND city = ?"
	args := []interface{}{prefix, province, city}

	if len(operators) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(operators)), ",")
		query += fmt.Sprintf(" AND operator IN (%s)", placeholders)
		for _, op := range operators {
			args = append(args, op)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Database("query segments", err)
	}
	defer rows.Close()

	var segments []model.SegmentRecord
	for rows.Next() {
		var seg model.SegmentRecord
		if err := rows.Scan(&seg.Prefix, &seg.Suffix, &seg.Province, &seg.City, &seg.Operator); err != nil {
			return nil, errors.Database("scan segment row", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Database("iterate segment rows", err)
	}
	return segments, nil
}

// Provinces returns the distinct provinces, ordered.
func (s *SQLiteStore) Provinces(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT DISTINCT province FROM phone_location ORDER BY province")
}

// Cities returns the distinct cities of a province, ordered.
func (s *SQLiteStore) Cities(ctx context.Context, province string) ([]string, error) {
	return s.queryStrings(ctx, "SELECT DISTINCT city FROM phone_location WHERE province = ? ORDER BY city", province)
}

func (s *SQLiteStore) queryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Database("query", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Database("scan row", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Database("iterate rows", err)
	}
	return out, nil
}
