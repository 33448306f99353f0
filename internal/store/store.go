// Package store is the data-access facade: the sole reader and mutator of
// persistent state. Route handlers and background jobs call into it and
// never touch gorm directly.
package store

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// normalizeLimit clamps a caller-supplied limit into [1, MaxPageSize].
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// icontains appends a case-insensitive substring match on the given columns.
// Postgres gets ILIKE, everything else falls back to LOWER(col) LIKE.
func icontains(db *gorm.DB, q string, cols ...string) *gorm.DB {
	pattern := "%" + q + "%"
	if strings.EqualFold(db.Name(), "postgres") {
		clauses := make([]string, len(cols))
		args := make([]interface{}, len(cols))
		for i, col := range cols {
			clauses[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
	pattern = "%" + strings.ToLower(q) + "%"
	clauses := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// hashtagSet lowercases and dedups a hashtag list.
func hashtagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// intersects reports whether any of tags is present in set.
func intersects(set map[string]struct{}, tags []string) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}
