package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studydeck/internal/identity"
)

// Repository is the CRUD surface over the material collection. Mutations
// update the in-memory collection first and then persist through the Store;
// a failed write is logged and the in-memory state remains the source of
// truth for the running process. The next load simply may not reflect the
// lost write.
type Repository struct {
	store  *Store
	logger *slog.Logger

	mu        sync.Mutex
	materials []Material
}

// OpenRepository loads the persisted collection and wraps it. A corrupt blob
// degrades to an empty collection with a logged warning; only storage-medium
// read failures are returned.
func OpenRepository(ctx context.Context, store *Store, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "library")

	materials, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return nil, err
		}
		logger.Warn("persisted materials unreadable, starting empty", "error", err)
		materials = nil
	}

	return &Repository{store: store, logger: logger, materials: materials}, nil
}

// Materials returns a deep copy of the collection, newest first.
func (r *Repository) Materials() []Material {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneMaterials(r.materials)
}

// Material looks up one material by id.
func (r *Repository) Material(id string) (Material, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.materials[i].Clone(), true
	}
	return Material{}, false
}

// CreateMaterial assigns fresh identifiers to the material and each question,
// prepends it to the collection, and persists. An empty display name falls
// back to a title derived from the file name.
func (r *Repository) CreateMaterial(ctx context.Context, fileName, displayName, summary string, questions []Question) (Material, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = displayNameFromFile(fileName)
	}

	material := Material{
		ID:           identity.NewID(),
		FileName:     fileName,
		DisplayName:  displayName,
		Summary:      summary,
		Quiz:         make([]Question, 0, len(questions)),
		QuizAttempts: []Attempt{},
		CreatedAt:    time.Now().UTC(),
	}
	for _, q := range questions {
		q.ID = identity.NewID()
		material.Quiz = append(material.Quiz, q)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials = append([]Material{material}, r.materials...)
	r.save(ctx)
	return material.Clone(), nil
}

// RenameMaterial replaces the display name. Unknown ids are a silent no-op.
func (r *Repository) RenameMaterial(ctx context.Context, id, newDisplayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return
	}
	r.materials[i].DisplayName = newDisplayName
	r.save(ctx)
}

// DeleteMaterial removes the material and everything embedded in it.
// Idempotent: deleting an absent id persists nothing and is not an error.
func (r *Repository) DeleteMaterial(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return
	}
	r.materials = append(r.materials[:i], r.materials[i+1:]...)
	r.save(ctx)
}

// AddQuestion appends a question with a fresh id to the material's quiz.
// Question and answer must be non-empty after trimming.
func (r *Repository) AddQuestion(ctx context.Context, materialID, question, answer, sourceNote string) (Question, error) {
	if strings.TrimSpace(question) == "" {
		return Question{}, fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if strings.TrimSpace(answer) == "" {
		return Question{}, fmt.Errorf("%w: answer text is required", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(materialID)
	if i < 0 {
		return Question{}, fmt.Errorf("%w: material %s not found", ErrValidation, materialID)
	}

	q := Question{
		ID:              identity.NewID(),
		Question:        question,
		Answer:          answer,
		SourceQuestions: sourceNote,
	}
	r.materials[i].Quiz = append(r.materials[i].Quiz, q)
	r.save(ctx)
	return q, nil
}

// EditQuestion replaces the question matching updated.ID. The id itself never
// changes; unknown material or question ids are a silent no-op.
func (r *Repository) EditQuestion(ctx context.Context, materialID string, updated Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(materialID)
	if i < 0 {
		return
	}
	for j := range r.materials[i].Quiz {
		if r.materials[i].Quiz[j].ID == updated.ID {
			r.materials[i].Quiz[j] = updated
			r.save(ctx)
			return
		}
	}
}

// DeleteQuestion removes the matching question. Idempotent if absent.
func (r *Repository) DeleteQuestion(ctx context.Context, materialID, questionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(materialID)
	if i < 0 {
		return
	}
	quiz := r.materials[i].Quiz
	for j := range quiz {
		if quiz[j].ID == questionID {
			r.materials[i].Quiz = append(quiz[:j], quiz[j+1:]...)
			r.save(ctx)
			return
		}
	}
}

// AppendAttempt records a completed quiz attempt. This is the only mutation
// the session engine's completion path invokes; attempts are never edited or
// removed afterwards.
func (r *Repository) AppendAttempt(ctx context.Context, materialID string, attempt Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(materialID)
	if i < 0 {
		return
	}
	r.materials[i].QuizAttempts = append(r.materials[i].QuizAttempts, attempt.Clone())
	r.save(ctx)
}

// indexOf returns the position of id in the collection, or -1. Callers hold
// the mutex.
func (r *Repository) indexOf(id string) int {
	for i := range r.materials {
		if r.materials[i].ID == id {
			return i
		}
	}
	return -1
}

// save persists the collection and absorbs write failures: storage errors
// must never crash a mutation, the in-memory state stays authoritative.
// Callers hold the mutex.
func (r *Repository) save(ctx context.Context) {
	if err := r.store.Save(ctx, r.materials); err != nil {
		r.logger.Error("persist materials", "error", err)
	}
}

var fileNameTitler = cases.Title(language.English)

// displayNameFromFile derives a readable default title from a file name:
// "ochem-chapter_3.pdf" becomes "Ochem Chapter 3".
func displayNameFromFile(fileName string) string {
	base := strings.TrimSpace(filepath.Base(fileName))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return fileNameTitler.String(base)
}
