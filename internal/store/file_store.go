package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// seqField is injected into every stored record so Query and List can return
// records in insertion order, matching the created_at ordering of the
// database backend.
const seqField = "_seq"

// FileStore keeps one JSON object per collection file, keyed by record id.
// Every operation is a whole-collection read-modify-write, so a single mutex
// serializes all access; writes go through a temp file and rename so a crash
// never leaves a half-written collection behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) load(collection string) (map[string]map[string]any, error) {
	raw, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return map[string]map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	data := map[string]map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("corrupt collection file %s: %w", collection, err)
		}
	}
	return data, nil
}

func (s *FileStore) save(collection string, data map[string]map[string]any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(collection))
}

func (s *FileStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(collection, doc)
}

func (s *FileStore) CreateUnique(ctx context.Context, collection, field string, value any, doc any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(collection)
	if err != nil {
		return "", err
	}
	for _, rec := range data {
		if jsonEqual(rec[field], value) {
			return "", ErrDuplicate
		}
	}
	return s.insert(collection, doc)
}

// insert assumes the caller holds the mutex.
func (s *FileStore) insert(collection string, doc any) (string, error) {
	data, err := s.load(collection)
	if err != nil {
		return "", err
	}
	id := newID()
	m, err := docToMap(doc, id)
	if err != nil {
		return "", err
	}
	m[seqField] = nextSeq(data)
	data[id] = m
	if err := s.save(collection, data); err != nil {
		return "", err
	}
	return id, nil
}

func nextSeq(data map[string]map[string]any) float64 {
	var max float64
	for _, rec := range data {
		if seq := seqOf(rec); seq > max {
			max = seq
		}
	}
	return max + 1
}

func seqOf(rec map[string]any) float64 {
	seq, _ := rec[seqField].(float64)
	return seq
}

// sortBySeq orders records by insertion sequence, falling back to id so
// records written before sequences existed still sort deterministically.
func sortBySeq(records []map[string]any) {
	sort.SliceStable(records, func(i, j int) bool {
		si, sj := seqOf(records[i]), seqOf(records[j])
		if si != sj {
			return si < sj
		}
		idI, _ := records[i]["id"].(string)
		idJ, _ := records[j]["id"].(string)
		return idI < idJ
	})
}

func (s *FileStore) Get(ctx context.Context, collection, id string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(collection)
	if err != nil {
		return err
	}
	rec, ok := data[id]
	if !ok {
		return ErrNotFound
	}
	return decodeInto(rec, out)
}

func (s *FileStore) Query(ctx context.Context, collection, field string, value any, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(collection)
	if err != nil {
		return err
	}
	matches := []map[string]any{}
	for _, rec := range data {
		if jsonEqual(rec[field], value) {
			matches = append(matches, rec)
		}
	}
	sortBySeq(matches)
	return decodeSlice(matches, out)
}

func (s *FileStore) List(ctx context.Context, collection string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(collection)
	if err != nil {
		return err
	}
	all := make([]map[string]any, 0, len(data))
	for _, rec := range data {
		all = append(all, rec)
	}
	sortBySeq(all)
	return decodeSlice(all, out)
}

func (s *FileStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(collection)
	if err != nil {
		return err
	}
	rec, ok := data[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		rec[k] = v
	}
	rec["id"] = id
	data[id] = rec
	return s.save(collection, data)
}
