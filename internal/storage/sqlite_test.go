package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "faqs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGetFAQ(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	faq := &models.FAQ{Question: "How do I register?", Answer: "On the website."}
	if err := store.CreateFAQ(ctx, faq); err != nil {
		t.Fatal(err)
	}
	if faq.ID == "" {
		t.Fatal("CreateFAQ should assign an id")
	}

	got, err := store.GetFAQ(ctx, faq.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != faq.Question || got.Answer != faq.Answer {
		t.Errorf("got %+v, want %+v", got, faq)
	}
}

func TestGetFAQ_notFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetFAQ(context.Background(), "missing"); err == nil {
		t.Error("expected an error for a missing faq")
	}
}

func TestListFAQs_insertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	questions := []string{"first?", "second?", "third?"}
	for _, q := range questions {
		if err := store.CreateFAQ(ctx, &models.FAQ{Question: q, Answer: "a"}); err != nil {
			t.Fatal(err)
		}
	}

	faqs, err := store.ListFAQs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(faqs) != len(questions) {
		t.Fatalf("got %d faqs, want %d", len(faqs), len(questions))
	}
	for i, q := range questions {
		if faqs[i].Question != q {
			t.Errorf("faqs[%d].Question = %q, want %q (order must be insertion order)", i, faqs[i].Question, q)
		}
	}
}

func TestDeleteFAQ(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	faq := &models.FAQ{Question: "q?", Answer: "a"}
	if err := store.CreateFAQ(ctx, faq); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteFAQ(ctx, faq.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetFAQ(ctx, faq.ID); err == nil {
		t.Error("faq should be gone after delete")
	}
	if err := store.DeleteFAQ(ctx, faq.ID); err == nil {
		t.Error("deleting a missing faq should error")
	}
}

func TestCountFAQs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountFAQs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("empty store count = %d, want 0", count)
	}

	for i := 0; i < 3; i++ {
		if err := store.CreateFAQ(ctx, &models.FAQ{Question: "q?", Answer: "a"}); err != nil {
			t.Fatal(err)
		}
	}
	count, err = store.CountFAQs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
