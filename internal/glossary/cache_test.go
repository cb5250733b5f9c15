package glossary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type countingSource struct {
	loads    int
	glossary Glossary
	err      error
}

func (s *countingSource) Load(domain string) (Glossary, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.glossary, nil
}

func TestCache_HitWithinTTL(t *testing.T) {
	t.Parallel()

	src := &countingSource{glossary: Glossary{{Source: "car", Replacement: "automobile"}}}
	c := NewCache(src, 300*time.Second)

	first := c.Get("automotive")
	second := c.Get("automotive")

	if src.loads != 1 {
		t.Errorf("expected 1 source load, got %d", src.loads)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected cached glossary on both calls, got %v / %v", first, second)
	}
}

func TestCache_ReloadsAfterTTL(t *testing.T) {
	t.Parallel()

	src := &countingSource{glossary: Glossary{{Source: "car", Replacement: "automobile"}}}
	c := NewCache(src, 300*time.Second)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Get("automotive")
	current = current.Add(301 * time.Second)
	c.Get("automotive")

	if src.loads != 2 {
		t.Errorf("expected reload after TTL expiry, got %d loads", src.loads)
	}
}

func TestCache_NotFoundNeverCached(t *testing.T) {
	t.Parallel()

	src := &countingSource{err: fmt.Errorf("domain %q: %w", "missing", ErrNotFound)}
	c := NewCache(src, 300*time.Second)

	for i := 0; i < 3; i++ {
		if g := c.Get("missing"); len(g) != 0 {
			t.Fatalf("expected empty glossary for missing domain, got %v", g)
		}
	}

	// Every call must re-attempt the load.
	if src.loads != 3 {
		t.Errorf("expected 3 load attempts for missing domain, got %d", src.loads)
	}
}

func TestCache_LoadErrorReturnsEmpty(t *testing.T) {
	t.Parallel()

	src := &countingSource{err: errors.New("disk on fire")}
	c := NewCache(src, 300*time.Second)

	if g := c.Get("automotive"); len(g) != 0 {
		t.Errorf("expected empty glossary on load error, got %v", g)
	}
	if src.loads != 1 {
		t.Errorf("expected 1 load attempt, got %d", src.loads)
	}
}

func TestFileSource_LoadPreservesOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `{"car": "automobile", "cab": "taxi", "ca": "CA"}`
	if err := os.WriteFile(filepath.Join(dir, "automotive.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(dir)
	g, err := src.Load("automotive")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"car", "cab", "ca"}
	if len(g) != len(want) {
		t.Fatalf("expected %d terms, got %d", len(want), len(g))
	}
	for i, term := range g {
		if term.Source != want[i] {
			t.Errorf("term %d: expected %q, got %q", i, want[i], term.Source)
		}
	}
}

func TestFileSource_MissingDomain(t *testing.T) {
	t.Parallel()

	src := NewFileSource(t.TempDir())
	_, err := src.Load("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileSource_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	src := NewFileSource(t.TempDir())
	if _, err := src.Load("../etc/passwd"); err == nil {
		t.Error("expected error for path traversal domain")
	}
}

func TestGlossary_Apply(t *testing.T) {
	t.Parallel()

	g := Glossary{{Source: "car", Replacement: "automobile"}}
	got := g.Apply("I bought a car")
	if got != "I bought a automobile" {
		t.Errorf("expected %q, got %q", "I bought a automobile", got)
	}
}

func TestGlossary_ApplyOrder(t *testing.T) {
	t.Parallel()

	// Earlier terms win on overlap.
	g := Glossary{
		{Source: "car", Replacement: "automobile"},
		{Source: "ca", Replacement: "CA"},
	}
	got := g.Apply("car cart")
	if got != "automobile automobilet" {
		t.Errorf("expected first-match-wins ordering, got %q", got)
	}
}
