package library_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"studydeck/internal/library"
	"studydeck/internal/logging"
	"studydeck/internal/storage"
)

const materialsKey = "studydeck/materials"

func newStore(port storage.Port) *library.Store {
	return library.NewStore(port, logging.Nop())
}

func TestLoadAbsentKeyYieldsEmpty(t *testing.T) {
	store := newStore(storage.NewMemory())
	materials, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(materials) != 0 {
		t.Fatalf("expected empty collection, got %d materials", len(materials))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(storage.NewMemory())
	ctx := context.Background()

	original := []library.Material{
		{
			ID:          "m1",
			FileName:    "notes.pdf",
			DisplayName: "Notes",
			Summary:     "A summary.",
			Quiz: []library.Question{
				{ID: "q1", Question: "What?", Answer: "That.", SourceQuestions: "page 1"},
				{ID: "q2", Question: "Why?", Answer: "Because.", SourceQuestions: "page 2"},
			},
			QuizAttempts: []library.Attempt{
				{
					Date:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
					Answers: []library.AnswerStatus{library.StatusCorrect, library.StatusIncorrect},
				},
			},
			CreatedAt: time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC),
		},
	}

	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want, _ := json.Marshal(original)
	got, _ := json.Marshal(loaded)
	if !bytes.Equal(want, got) {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestLoadCorruptBlobFailsWithCorruptState(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()
	if err := port.Set(ctx, materialsKey, []byte("{not json")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	store := newStore(port)
	if _, err := store.Load(ctx); !errors.Is(err, library.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestMigrationAssignsMissingQuestionIDs(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()

	// Legacy layout: questions persisted without ids.
	legacy := []byte(`[{
        "id": "m1",
        "fileName": "old.pdf",
        "displayName": "Old",
        "summary": "s",
        "quiz": [
            {"question": "Q1", "answer": "A1", "source_questions": "p1"},
            {"id": "keep-me", "question": "Q2", "answer": "A2", "source_questions": "p2"},
            {"question": "Q3", "answer": "A3", "source_questions": "p3"}
        ],
        "quizAttempts": [],
        "createdAt": "2025-01-02T03:04:05Z"
    }]`)
	if err := port.Set(ctx, materialsKey, legacy); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	next := 0
	store := library.NewStore(port, logging.Nop(), library.WithIDSource(func() string {
		next++
		return fmt.Sprintf("migrated-%d", next)
	}))

	materials, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	quiz := materials[0].Quiz
	if quiz[0].ID != "migrated-1" || quiz[2].ID != "migrated-2" {
		t.Fatalf("expected fresh ids on legacy questions, got %q and %q", quiz[0].ID, quiz[2].ID)
	}
	if quiz[1].ID != "keep-me" {
		t.Fatalf("existing id must not be reassigned, got %q", quiz[1].ID)
	}
	if quiz[1].SourceQuestions != "p2" || materials[0].Summary != "s" {
		t.Fatal("migration must pass other fields through unchanged")
	}

	// Write-back happened: the persisted blob now carries the ids.
	blob, ok, err := port.Get(ctx, materialsKey)
	if err != nil || !ok {
		t.Fatalf("expected persisted blob after migration: ok=%v err=%v", ok, err)
	}
	var persisted []library.Material
	if err := json.Unmarshal(blob, &persisted); err != nil {
		t.Fatalf("decode persisted blob: %v", err)
	}
	if persisted[0].Quiz[0].ID != "migrated-1" {
		t.Fatal("expected migrated ids written back synchronously")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()

	legacy := []byte(`[{
        "id": "m1",
        "fileName": "old.pdf",
        "displayName": "Old",
        "summary": "",
        "quiz": [{"question": "Q", "answer": "A", "source_questions": ""}],
        "quizAttempts": [],
        "createdAt": "2025-01-02T03:04:05Z"
    }]`)
	if err := port.Set(ctx, materialsKey, legacy); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	store := newStore(port)
	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	blobAfterFirst, _, _ := port.Get(ctx, materialsKey)

	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	blobAfterSecond, _, _ := port.Get(ctx, materialsKey)

	if first[0].Quiz[0].ID != second[0].Quiz[0].ID {
		t.Fatalf("second pass reassigned id: %q vs %q", first[0].Quiz[0].ID, second[0].Quiz[0].ID)
	}
	if !bytes.Equal(blobAfterFirst, blobAfterSecond) {
		t.Fatal("second load must not change the persisted blob")
	}
}

func TestSaveEmptyCollectionIsInitialized(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()
	store := newStore(port)

	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	blob, ok, err := port.Get(ctx, materialsKey)
	if err != nil || !ok {
		t.Fatalf("expected persisted empty collection: ok=%v err=%v", ok, err)
	}
	if string(blob) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", blob)
	}
}
