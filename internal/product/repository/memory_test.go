package repository

import (
	"testing"

	"github.com/simpleapi/simpleapi/internal/product"
)

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo()

	id, err := repo.Create(&product.Product{Name: "Keyboard", Price: 49.90})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	got, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Keyboard" || got.Price != 49.90 {
		t.Fatalf("unexpected product: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set on create")
	}
}

func TestMemoryRepoGetMissing(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.Get("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	id, _ := repo.Create(&product.Product{Name: "Mouse", Price: 10})

	got, _ := repo.Get(id)
	got.Name = "mutated"

	again, _ := repo.Get(id)
	if again.Name != "Mouse" {
		t.Fatalf("stored product was mutated through a returned copy: %q", again.Name)
	}
}

func TestMemoryRepoUpdate(t *testing.T) {
	repo := NewMemoryRepo()
	id, _ := repo.Create(&product.Product{Name: "Mouse", Price: 10})

	if err := repo.Update(id, "Gaming Mouse", "with lights", 25.50); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := repo.Get(id)
	if got.Name != "Gaming Mouse" || got.Description != "with lights" || got.Price != 25.50 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := repo.Update("missing", "x", "", 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo()
	id, _ := repo.Create(&product.Product{Name: "Mouse"})

	if err := repo.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryRepoListPaging(t *testing.T) {
	repo := NewMemoryRepo()
	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		if _, err := repo.Create(&product.Product{Name: n}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	page1, err := repo.List(1, 2, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 items on page 1, got %d", len(page1))
	}

	page3, _ := repo.List(3, 2, "")
	if len(page3) != 1 {
		t.Fatalf("expected 1 item on page 3, got %d", len(page3))
	}

	// Out-of-range pages are empty, not an error.
	page9, _ := repo.List(9, 2, "")
	if len(page9) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page9))
	}

	// page/pageSize below 1 are clamped to sane values.
	clamped, _ := repo.List(0, 0, "")
	if len(clamped) != 5 {
		t.Fatalf("expected all 5 items with clamped paging, got %d", len(clamped))
	}
}

func TestMemoryRepoListQuery(t *testing.T) {
	repo := NewMemoryRepo()
	for _, n := range []string{"Gaming Mouse", "Office Mouse", "Keyboard"} {
		repo.Create(&product.Product{Name: n})
	}

	got, err := repo.List(1, 10, "mouse")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for 'mouse', got %d", len(got))
	}
	for _, p := range got {
		if p.Name == "Keyboard" {
			t.Fatal("query must not match Keyboard")
		}
	}

	none, _ := repo.List(1, 10, "monitor")
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}
