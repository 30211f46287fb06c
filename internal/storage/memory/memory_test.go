package memory

import (
	"context"
	"testing"
)

func TestLoadMissingKey(t *testing.T) {
	s := New()
	_, ok, err := s.Load(context.Background(), "expenses")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("missing key must report ok=false")
	}
}

func TestSaveThenLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Save(ctx, "budgets", []byte(`[{"category":"Shopping","limit":100}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx, "budgets")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"category":"Shopping","limit":100}]` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Save(ctx, "k", []byte("one"))
	_ = s.Save(ctx, "k", []byte("two"))
	got, _, _ := s.Load(ctx, "k")
	if string(got) != "two" {
		t.Fatalf("expected full replacement, got %s", got)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Save(ctx, "k", []byte("abc"))
	got, _, _ := s.Load(ctx, "k")
	got[0] = 'X'
	again, _, _ := s.Load(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("caller mutation leaked into the store: %s", again)
	}
}
