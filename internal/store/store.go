// Package store provides the record store used by every repository: named
// collections of JSON documents keyed by generated UUIDs. Two backends exist
// with identical semantics, a MySQL-backed document table and a local JSON
// file per collection, plus a wrapper that fails over from the first to the
// second for the remainder of the process lifetime.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	CollectionStudents     = "students"
	CollectionQuizzes      = "quizzes"
	CollectionResults      = "results"
	CollectionVideos       = "videos"
	CollectionFinalResults = "final_results"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the key-value facade over one of the persistence backends. Every
// record carries an injected "id" field matching its key. out parameters are
// pointers to a record struct (Get) or to a slice of them (Query, List).
type Store interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	// CreateUnique inserts doc only if no record in the collection already has
	// field == value. The check and the insert are atomic.
	CreateUnique(ctx context.Context, collection, field string, value any, doc any) (string, error)
	Get(ctx context.Context, collection, id string, out any) error
	Query(ctx context.Context, collection, field string, value any, out any) error
	List(ctx context.Context, collection string, out any) error
	Update(ctx context.Context, collection, id string, patch map[string]any) error
}

func newID() string {
	return uuid.New().String()
}

// docToMap round-trips a record through JSON so both backends store the exact
// wire shape, then injects the id field.
func docToMap(doc any, id string) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	m["id"] = id
	return m, nil
}

func decodeInto(m map[string]any, out any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func decodeSlice(ms []map[string]any, out any) error {
	raw, err := json.Marshal(ms)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// jsonEqual compares a stored field against a query value through their JSON
// encodings, so string/number/bool comparisons behave the same on both
// backends.
func jsonEqual(a, b any) bool {
	ra, err := json.Marshal(a)
	if err != nil {
		return false
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}
