package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"studydeck/internal/extraction"
	"studydeck/internal/library"
	"studydeck/internal/quiz"
	"studydeck/internal/services/llm"
)

// ErrInvalidMode rejects an intent issued outside the mode that gates it.
var ErrInvalidMode = errors.New("app: operation not valid in current mode")

// Mode names the screen the application is on. Every user intent is gated on
// the current mode; the controller never performs a transition the mode graph
// does not allow.
type Mode string

const (
	ModeUpload    Mode = "upload"
	ModeLoading   Mode = "loading"
	ModeDashboard Mode = "dashboard"
	ModeQuiz      Mode = "quiz"
	ModeResults   Mode = "results"
)

// Generator produces a study set from extracted document text. Satisfied by
// *llm.Client.
type Generator interface {
	GenerateStudySet(ctx context.Context, text string, opts llm.GenerationOptions) (llm.StudySet, error)
}

// Controller owns the application state machine: the current mode, at most
// one in-flight generation, and at most one active quiz session. All methods
// are safe for concurrent use; the upload pipeline completes on its own
// goroutine and re-enters through completeUpload.
type Controller struct {
	repo      *library.Repository
	extractor extraction.Extractor
	generator Generator
	logger    *slog.Logger
	genOpts   llm.GenerationOptions

	mu               sync.Mutex
	mode             Mode
	epoch            uint64
	session          *quiz.Session
	activeMaterialID string
	lastAttempt      library.Attempt
	lastError        string

	wg sync.WaitGroup
}

// Option customizes the controller.
type Option func(*Controller)

// WithGenerationOptions sets the question-count targets passed to the
// generator.
func WithGenerationOptions(opts llm.GenerationOptions) Option {
	return func(c *Controller) {
		c.genOpts = opts
	}
}

// NewController wires the repository and the two external collaborators. The
// controller starts in upload mode.
func NewController(repo *library.Repository, extractor extraction.Extractor, generator Generator, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		repo:      repo,
		extractor: extractor,
		generator: generator,
		logger:    logger.With("component", "app"),
		mode:      ModeUpload,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// LastError returns the user-facing message from the most recent failed
// upload, cleared by the next successful one.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// ActiveMaterial returns the material backing the current quiz or results
// view.
func (c *Controller) ActiveMaterial() (library.Material, bool) {
	c.mu.Lock()
	id := c.activeMaterialID
	c.mu.Unlock()
	if id == "" {
		return library.Material{}, false
	}
	return c.repo.Material(id)
}

// LastAttempt returns the attempt produced by the most recently completed
// session. Only meaningful in results mode.
func (c *Controller) LastAttempt() (library.Attempt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeResults {
		return library.Attempt{}, c.modeError("review results", ModeResults)
	}
	return c.lastAttempt.Clone(), nil
}

// Wait blocks until any in-flight generation has settled. The settled result
// may still have been discarded as stale.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// BeginUpload starts the ingest pipeline for the PDF at path: extraction,
// then generation, then material creation. Only valid from upload mode; the
// controller sits in loading mode until the pipeline settles. Failures revert
// to upload mode with a user-facing message and create nothing.
func (c *Controller) BeginUpload(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.mode != ModeUpload {
		defer c.mu.Unlock()
		return c.modeError("upload", ModeUpload)
	}
	c.mode = ModeLoading
	c.lastError = ""
	epoch := c.epoch
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		set, err := c.runPipeline(ctx, path)
		c.completeUpload(ctx, epoch, path, set, err)
	}()
	return nil
}

// runPipeline performs the blocking extract/generate work off the lock.
func (c *Controller) runPipeline(ctx context.Context, path string) (llm.StudySet, error) {
	text, err := c.extractor.Extract(ctx, path)
	if err != nil {
		return llm.StudySet{}, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	set, err := c.generator.GenerateStudySet(ctx, text, c.genOpts)
	if err != nil {
		return llm.StudySet{}, fmt.Errorf("generate study set: %w", err)
	}
	return set, nil
}

// completeUpload applies a settled pipeline result. Results carrying a stale
// epoch were abandoned while in flight and are logged and dropped without
// touching any state.
func (c *Controller) completeUpload(ctx context.Context, epoch uint64, path string, set llm.StudySet, pipelineErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		c.logger.Info("discarding stale generation result", "path", path, "epoch", epoch)
		return
	}

	if pipelineErr != nil {
		c.logger.Warn("upload failed", "path", path, "error", pipelineErr)
		c.mode = ModeUpload
		c.lastError = pipelineErr.Error()
		return
	}

	material, err := c.repo.CreateMaterial(ctx, filepath.Base(path), "", set.Summary, set.Questions)
	if err != nil {
		c.logger.Warn("create material failed", "path", path, "error", err)
		c.mode = ModeUpload
		c.lastError = err.Error()
		return
	}

	c.activeMaterialID = material.ID
	c.mode = ModeDashboard
	c.lastError = ""
}

// Abandon navigates back to upload mode from anywhere and invalidates any
// in-flight generation by bumping the epoch. The pipeline goroutine is not
// interrupted; its result is simply never applied.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.session = nil
	c.activeMaterialID = ""
	c.mode = ModeUpload
}

// OpenDashboard navigates to the material list. Not valid while a generation
// or a quiz is in progress.
func (c *Controller) OpenDashboard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case ModeLoading, ModeQuiz:
		return c.modeError("open dashboard", ModeDashboard)
	}
	c.session = nil
	c.mode = ModeDashboard
	return nil
}

// StartQuiz begins a session over the material's current questions. A
// material with no questions is rejected with quiz.ErrEmptyQuiz before any
// session state exists.
func (c *Controller) StartQuiz(materialID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeDashboard {
		return c.modeError("start quiz", ModeDashboard)
	}

	material, ok := c.repo.Material(materialID)
	if !ok {
		return fmt.Errorf("app: material %s not found", materialID)
	}
	session, err := quiz.NewSession(material.Quiz)
	if err != nil {
		return err
	}

	c.session = session
	c.activeMaterialID = materialID
	c.mode = ModeQuiz
	return nil
}

// CurrentQuestion returns the question at the session cursor with its
// transient state.
func (c *Controller) CurrentQuestion() (library.Question, quiz.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeQuiz {
		return library.Question{}, quiz.State{}, c.modeError("read question", ModeQuiz)
	}
	q, st := c.session.Current()
	return q, st, nil
}

// Progress reports the cursor position and total question count of the
// active session.
func (c *Controller) Progress() (index, total int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeQuiz {
		return 0, 0, c.modeError("read progress", ModeQuiz)
	}
	return c.session.Index(), c.session.Len(), nil
}

// RevealAnswer shows the current question's answer.
func (c *Controller) RevealAnswer() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeQuiz {
		return c.modeError("reveal answer", ModeQuiz)
	}
	return c.session.Reveal()
}

// MarkAnswer records a self-graded outcome for the current question.
func (c *Controller) MarkAnswer(status library.AnswerStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeQuiz {
		return c.modeError("mark answer", ModeQuiz)
	}
	return c.session.Answer(status)
}

// NextQuestion advances the session. Completing the last question freezes
// the attempt, records it on the material, and moves to results mode.
func (c *Controller) NextQuestion(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeQuiz {
		return c.modeError("advance", ModeQuiz)
	}
	if err := c.session.Advance(); err != nil {
		return err
	}
	if !c.session.Completed() {
		return nil
	}

	attempt, err := c.session.Attempt()
	if err != nil {
		return err
	}
	c.repo.AppendAttempt(ctx, c.activeMaterialID, attempt)
	c.lastAttempt = attempt
	c.session = nil
	c.mode = ModeResults
	return nil
}

// FinishReview leaves the results screen and returns to the dashboard.
func (c *Controller) FinishReview() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeResults {
		return c.modeError("finish review", ModeResults)
	}
	c.mode = ModeDashboard
	return nil
}

// modeError builds the gate failure for an intent. Callers hold the mutex.
func (c *Controller) modeError(intent string, want Mode) error {
	return fmt.Errorf("%w: %s requires %s mode, currently %s", ErrInvalidMode, intent, want, c.mode)
}
