package ai

import (
	"context"
	"errors"
	"testing"
)

type countingTranslator struct {
	calls int
	fail  bool
}

func (c *countingTranslator) Translate(_ context.Context, texts []string, _ string) ([]string, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("upstream down")
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = "es:" + t
	}
	return out, nil
}

func TestCachingTranslatorMemoizes(t *testing.T) {
	inner := &countingTranslator{}
	tr := NewCachingTranslator(inner)
	ctx := context.Background()

	got, err := tr.Translate(ctx, []string{"Hello", "Tree"}, "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "es:Hello" || got[1] != "es:Tree" {
		t.Fatalf("got %v", got)
	}

	// Second call fully cached, inner must not be hit again.
	if _, err := tr.Translate(ctx, []string{"Tree", "Hello"}, "es"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}

	// A new language misses the cache.
	if _, err := tr.Translate(ctx, []string{"Hello"}, "fr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachingTranslatorPartialMiss(t *testing.T) {
	inner := &countingTranslator{}
	tr := NewCachingTranslator(inner)
	ctx := context.Background()

	if _, err := tr.Translate(ctx, []string{"Hello"}, "es"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := tr.Translate(ctx, []string{"Hello", "Seed"}, "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "es:Hello" || got[1] != "es:Seed" {
		t.Fatalf("got %v", got)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachingTranslatorDoesNotCacheFailures(t *testing.T) {
	inner := &countingTranslator{fail: true}
	tr := NewCachingTranslator(inner)
	ctx := context.Background()

	if _, err := tr.Translate(ctx, []string{"Hello"}, "es"); err == nil {
		t.Fatal("expected error")
	}
	inner.fail = false
	got, err := tr.Translate(ctx, []string{"Hello"}, "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "es:Hello" {
		t.Fatalf("got %v", got)
	}
}

func TestParseTranslations(t *testing.T) {
	out, err := parseTranslations("```json\n[\"hola\",\"árbol\"]\n```", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != "hola" || out[1] != "árbol" {
		t.Fatalf("got %v", out)
	}
	if _, err := parseTranslations(`["hola"]`, 2); err == nil {
		t.Fatal("length mismatch must fail")
	}
}
