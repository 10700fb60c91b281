package store

import (
	"context"
	"errors"
	"testing"
)

type person struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return fs
}

func TestFileStoreCreateAndGet(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	id, err := fs.Create(ctx, "people", person{Name: "Alice", Email: "alice@example.com", Age: 20})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	var got person
	if err := fs.Get(ctx, "people", id, &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id {
		t.Errorf("injected id = %q, want %q", got.ID, id)
	}
	if got.Name != "Alice" || got.Age != 20 {
		t.Errorf("record round-trip mismatch: %+v", got)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	fs := newTestFileStore(t)

	var got person
	err := fs.Get(context.Background(), "people", "nope", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestFileStoreQuery(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	fs.Create(ctx, "people", person{Name: "Alice", Email: "alice@example.com"})
	fs.Create(ctx, "people", person{Name: "Bob", Email: "bob@example.com"})

	var matches []person
	if err := fs.Query(ctx, "people", "email", "bob@example.com", &matches); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Bob" {
		t.Fatalf("Query matches = %+v, want just Bob", matches)
	}

	if err := fs.Query(ctx, "people", "email", "none@example.com", &matches); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Query for absent value = %+v, want empty", matches)
	}
}

func TestFileStoreCreateUnique(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	if _, err := fs.CreateUnique(ctx, "people", "email", "alice@example.com",
		person{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("first CreateUnique: %v", err)
	}

	_, err := fs.CreateUnique(ctx, "people", "email", "alice@example.com",
		person{Name: "Alice Again", Email: "alice@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second CreateUnique = %v, want ErrDuplicate", err)
	}

	var all []person
	if err := fs.List(ctx, "people", &all); err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1 after rejected duplicate", len(all))
	}
}

func TestFileStoreUpdate(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	id, _ := fs.Create(ctx, "people", person{Name: "Alice", Age: 20})

	if err := fs.Update(ctx, "people", id, map[string]any{"age": 21}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var got person
	if err := fs.Get(ctx, "people", id, &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Age != 21 {
		t.Errorf("Age = %d, want 21", got.Age)
	}
	if got.Name != "Alice" {
		t.Errorf("untouched field changed: %q", got.Name)
	}
	if got.ID != id {
		t.Errorf("id lost on update: %q", got.ID)
	}

	if err := fs.Update(ctx, "people", "missing", map[string]any{"age": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestFileStoreListInsertionOrder(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	for _, name := range names {
		if _, err := fs.Create(ctx, "people", person{Name: name, Email: "same@example.com"}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	for i := 0; i < 50; i++ {
		var all []person
		if err := fs.List(ctx, "people", &all); err != nil {
			t.Fatalf("List: %v", err)
		}
		for j, name := range names {
			if all[j].Name != name {
				t.Fatalf("List order changed on pass %d: got %q at %d, want %q", i, all[j].Name, j, name)
			}
		}

		var matches []person
		if err := fs.Query(ctx, "people", "email", "same@example.com", &matches); err != nil {
			t.Fatalf("Query: %v", err)
		}
		for j, name := range names {
			if matches[j].Name != name {
				t.Fatalf("Query order changed on pass %d: got %q at %d, want %q", i, matches[j].Name, j, name)
			}
		}
	}
}

func TestFileStoreOrderSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	fs1.Create(ctx, "people", person{Name: "First"})
	fs1.Create(ctx, "people", person{Name: "Second"})

	fs2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs2.Create(ctx, "people", person{Name: "Third"}); err != nil {
		t.Fatalf("Create after reopen: %v", err)
	}

	var all []person
	if err := fs2.List(ctx, "people", &all); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, name := range want {
		if all[i].Name != name {
			t.Fatalf("order after reopen = %v at %d, want %v", all[i].Name, i, want)
		}
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	id, err := fs1.Create(ctx, "people", person{Name: "Alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fs2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	var got person
	if err := fs2.Get(ctx, "people", id, &got); err != nil {
		t.Fatalf("Get from fresh instance: %v", err)
	}
	if got.Name != "Alice" {
		t.Fatalf("record not persisted: %+v", got)
	}
}
