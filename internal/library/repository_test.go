package library_test

import (
	"context"
	"errors"
	"testing"

	"studydeck/internal/library"
	"studydeck/internal/logging"
	"studydeck/internal/storage"
	"studydeck/internal/testsupport"
)

func seedMaterial(t *testing.T, repo *library.Repository) library.Material {
	t.Helper()
	material, err := repo.CreateMaterial(
		context.Background(),
		"biology-chapter_2.pdf",
		"Cell Biology",
		"Cells and their organelles.",
		[]library.Question{
			{Question: "What is a ribosome?", Answer: "Protein factory.", SourceQuestions: "section 2.1"},
			{Question: "What is ATP?", Answer: "Energy currency.", SourceQuestions: "section 2.3"},
		},
	)
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	return material
}

func TestCreateMaterialAssignsIDsAndPrepends(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()

	first := seedMaterial(t, repo)
	if first.ID == "" {
		t.Fatal("expected material id")
	}
	for _, q := range first.Quiz {
		if q.ID == "" {
			t.Fatal("expected question ids")
		}
	}
	if len(first.QuizAttempts) != 0 {
		t.Fatal("expected empty attempt history")
	}

	second, err := repo.CreateMaterial(ctx, "other.pdf", "Other", "", nil)
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	materials := repo.Materials()
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	if materials[0].ID != second.ID {
		t.Fatal("expected newest material first")
	}
}

func TestCreateMaterialDerivesDisplayName(t *testing.T) {
	repo := testsupport.NewRepository(t)
	material, err := repo.CreateMaterial(context.Background(), "ochem-chapter_3.pdf", "  ", "", nil)
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if material.DisplayName != "Ochem Chapter 3" {
		t.Fatalf("unexpected derived display name %q", material.DisplayName)
	}
}

func TestRenameMaterial(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)

	repo.RenameMaterial(ctx, material.ID, "Renamed")
	got, ok := repo.Material(material.ID)
	if !ok || got.DisplayName != "Renamed" {
		t.Fatalf("expected rename to apply, got %+v ok=%v", got, ok)
	}

	// Unknown id is a silent no-op.
	repo.RenameMaterial(ctx, "missing", "X")
	if len(repo.Materials()) != 1 {
		t.Fatal("rename of unknown id must not alter the collection")
	}
}

func TestDeleteMaterialCascades(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)
	repo.AppendAttempt(ctx, material.ID, library.Attempt{
		Answers: []library.AnswerStatus{library.StatusCorrect, library.StatusIncorrect},
	})

	repo.DeleteMaterial(ctx, material.ID)
	if _, ok := repo.Material(material.ID); ok {
		t.Fatal("expected material to be gone")
	}
	if len(repo.Materials()) != 0 {
		t.Fatal("expected empty collection after delete")
	}

	// Idempotent.
	repo.DeleteMaterial(ctx, material.ID)
}

func TestAddQuestionValidation(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)

	cases := []struct {
		name     string
		question string
		answer   string
	}{
		{"empty question", "   ", "answer"},
		{"empty answer", "question", "\t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := repo.AddQuestion(ctx, material.ID, tc.question, tc.answer, ""); !errors.Is(err, library.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	got, _ := repo.Material(material.ID)
	if len(got.Quiz) != 2 {
		t.Fatal("rejected add must not change the quiz")
	}
}

func TestAddThenDeleteQuestionRestoresLength(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)
	before := len(material.Quiz)

	added, err := repo.AddQuestion(ctx, material.ID, "What is DNA?", "Genetic code.", "manual")
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	repo.DeleteQuestion(ctx, material.ID, added.ID)

	got, _ := repo.Material(material.ID)
	if len(got.Quiz) != before {
		t.Fatalf("expected quiz length %d, got %d", before, len(got.Quiz))
	}

	// Deleting again is idempotent.
	repo.DeleteQuestion(ctx, material.ID, added.ID)
}

func TestEditQuestionPreservesIdentity(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)
	target := material.Quiz[0]
	other := material.Quiz[1]

	repo.EditQuestion(ctx, material.ID, library.Question{
		ID:              target.ID,
		Question:        "new",
		Answer:          "new2",
		SourceQuestions: target.SourceQuestions,
	})

	got, _ := repo.Material(material.ID)
	if got.Quiz[0].ID != target.ID {
		t.Fatal("edit must not change the question id")
	}
	if got.Quiz[0].Question != "new" || got.Quiz[0].Answer != "new2" {
		t.Fatalf("expected edited text, got %+v", got.Quiz[0])
	}
	if got.Quiz[0].SourceQuestions != target.SourceQuestions {
		t.Fatal("provenance must survive the edit")
	}
	if got.Quiz[1] != other {
		t.Fatalf("other questions must be untouched, got %+v", got.Quiz[1])
	}

	// Unknown question id is a silent no-op.
	repo.EditQuestion(ctx, material.ID, library.Question{ID: "missing", Question: "x", Answer: "y"})
}

func TestAppendAttemptIsAppendOnly(t *testing.T) {
	repo := testsupport.NewRepository(t)
	ctx := context.Background()
	material := seedMaterial(t, repo)

	first := library.Attempt{Answers: []library.AnswerStatus{library.StatusCorrect, library.StatusCorrect}}
	second := library.Attempt{Answers: []library.AnswerStatus{library.StatusIncorrect, library.StatusUnanswered}}

	repo.AppendAttempt(ctx, material.ID, first)
	got, _ := repo.Material(material.ID)
	if len(got.QuizAttempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(got.QuizAttempts))
	}

	repo.AppendAttempt(ctx, material.ID, second)
	got, _ = repo.Material(material.ID)
	if len(got.QuizAttempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(got.QuizAttempts))
	}
	if got.QuizAttempts[0].Answers[0] != library.StatusCorrect ||
		got.QuizAttempts[0].Answers[1] != library.StatusCorrect {
		t.Fatal("prior attempt entries must be unchanged")
	}
	if got.QuizAttempts[1].Answers[1] != library.StatusUnanswered {
		t.Fatal("expected second attempt appended in order")
	}
}

func TestMutationsSurviveReload(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()
	store := library.NewStore(port, logging.Nop())

	repo, err := library.OpenRepository(ctx, store, logging.Nop())
	if err != nil {
		t.Fatalf("OpenRepository failed: %v", err)
	}
	material := seedMaterial(t, repo)
	repo.RenameMaterial(ctx, material.ID, "Persisted Name")

	reloaded, err := library.OpenRepository(ctx, library.NewStore(port, logging.Nop()), logging.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, ok := reloaded.Material(material.ID)
	if !ok || got.DisplayName != "Persisted Name" {
		t.Fatalf("expected persisted rename, got %+v ok=%v", got, ok)
	}
}

func TestOpenRepositoryDegradesOnCorruptBlob(t *testing.T) {
	port := storage.NewMemory()
	ctx := context.Background()
	if err := port.Set(ctx, "studydeck/materials", []byte("garbage")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	repo, err := library.OpenRepository(ctx, library.NewStore(port, logging.Nop()), logging.Nop())
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if len(repo.Materials()) != 0 {
		t.Fatal("expected empty collection after corrupt load")
	}
}

type failingPort struct {
	*storage.Memory
	fail bool
}

func (p *failingPort) Set(ctx context.Context, key string, value []byte) error {
	if p.fail {
		return errors.New("disk full")
	}
	return p.Memory.Set(ctx, key, value)
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	port := &failingPort{Memory: storage.NewMemory()}
	ctx := context.Background()
	repo, err := library.OpenRepository(ctx, library.NewStore(port, logging.Nop()), logging.Nop())
	if err != nil {
		t.Fatalf("OpenRepository failed: %v", err)
	}

	port.fail = true
	material, err := repo.CreateMaterial(ctx, "a.pdf", "A", "", nil)
	if err != nil {
		t.Fatalf("CreateMaterial must absorb write failures, got %v", err)
	}
	if _, ok := repo.Material(material.ID); !ok {
		t.Fatal("in-memory state must remain authoritative after a failed write")
	}
}

func TestMigrationWriteBackFailureStillLoads(t *testing.T) {
	port := &failingPort{Memory: storage.NewMemory()}
	ctx := context.Background()
	legacy := `[{"id":"m1","fileName":"a.pdf","displayName":"A","summary":"",` +
		`"quiz":[{"question":"Q","answer":"A","source_questions":"s"}],` +
		`"quizAttempts":[],"createdAt":"2024-01-01T00:00:00Z"}]`
	if err := port.Set(ctx, "studydeck/materials", []byte(legacy)); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	port.fail = true
	repo, err := library.OpenRepository(ctx, library.NewStore(port, logging.Nop()), logging.Nop())
	if err != nil {
		t.Fatalf("open must absorb a failed migration write-back, got %v", err)
	}

	got, ok := repo.Material("m1")
	if !ok {
		t.Fatal("expected legacy material to load")
	}
	if got.Quiz[0].ID == "" {
		t.Fatal("expected migrated question id despite failed write-back")
	}
}
