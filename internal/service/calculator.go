package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"toiture-backend/internal/constants"
	"toiture-backend/internal/draft"
	"toiture-backend/internal/estimate"
	"toiture-backend/internal/pricing"
	"toiture-backend/internal/storage"
)

// BlankID addresses the calculator that is not bound to a submission.
const BlankID = "_"

const draftWriteTimeout = 5 * time.Second

var (
	ErrSessionNotFound = errors.New("calculator session not found")
	ErrNoSubmission    = errors.New("calculator is not bound to a submission")
)

type SubmissionStorage interface {
	Submission(ctx context.Context, id string) (storage.Submission, error)
	PatchSubmission(ctx context.Context, id string, patch storage.SubmissionPatch) error
}

type DraftStorage interface {
	Draft(ctx context.Context, key string) (storage.Draft, error)
	SaveDraft(ctx context.Context, d storage.Draft) error
	DeleteDraft(ctx context.Context, key string) error
}

// Snapshot is what the front-end renders after every change.
type Snapshot struct {
	SubmissionID    string            `json:"submissionId"`
	Estimate        estimate.Estimate `json:"estimate"`
	UnitPrices      pricing.Table     `json:"unitPrices"`
	Results         estimate.Result   `json:"results"`
	PrefilledData   *storage.Prefill  `json:"prefilledData,omitempty"`
	RestoredDraft   bool              `json:"restoredDraft"`
	AutosavePending bool              `json:"autosavePending"`
}

type session struct {
	mu sync.Mutex

	submissionID string
	key          string
	estimate     estimate.Estimate
	prices       pricing.Table
	result       estimate.Result
	seed         *storage.Prefill
	restored     bool
	autosave     *draft.Debouncer
}

func (s *session) recompute() {
	s.estimate, s.result = estimate.Recompute(s.estimate, s.prices)
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		SubmissionID:    s.submissionID,
		Estimate:        s.estimate,
		UnitPrices:      s.prices.Clone(),
		Results:         s.result,
		PrefilledData:   s.seed,
		RestoredDraft:   s.restored,
		AutosavePending: s.autosave.Pending(),
	}
}

// CalculatorService owns the open calculator sessions.
type CalculatorService struct {
	log         *slog.Logger
	submissions SubmissionStorage
	drafts      DraftStorage
	prices      *PriceService
	delay       time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewCalculatorService(log *slog.Logger, submissions SubmissionStorage, drafts DraftStorage, prices *PriceService, autosaveDelay time.Duration) *CalculatorService {
	return &CalculatorService{
		log:         log,
		submissions: submissions,
		drafts:      drafts,
		prices:      prices,
		delay:       autosaveDelay,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == BlankID {
		return ""
	}
	return id
}

func (c *CalculatorService) session(id string) (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("id=%s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Open loads the submission, the price table and the draft concurrently.
// A draft, when present, wins over the submission seed.
func (c *CalculatorService) Open(ctx context.Context, id string) (Snapshot, error) {
	const op = "service.CalculatorService.Open"

	id = normalizeID(id)
	log := c.log.With(slog.String("op", op), slog.String("submission_id", id))

	// несохранённые правки прежней сессии пишем до чтения черновика
	c.mu.Lock()
	prev := c.sessions[id]
	c.mu.Unlock()
	if prev != nil {
		prev.autosave.Flush()
	}

	var (
		sub      *storage.Submission
		prices   pricing.Table
		saved    *storage.Draft
		draftKey = storage.DraftKey(id)
	)

	g, gCtx := errgroup.WithContext(ctx)
	if id != "" {
		g.Go(func() error {
			s, err := c.submissions.Submission(gCtx, id)
			if err != nil {
				return fmt.Errorf("submission: %w", err)
			}
			sub = &s
			return nil
		})
	}
	g.Go(func() error {
		var err error
		prices, err = c.prices.Load(gCtx)
		if err != nil {
			log.Warn("failed to load price overrides, using current table", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		d, err := c.drafts.Draft(gCtx, draftKey)
		if err != nil {
			if !errors.Is(err, storage.ErrDraftNotFound) {
				log.Warn("failed to load draft", slog.String("error", err.Error()))
			}
			return nil
		}
		saved = &d
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s := &session{
		submissionID: id,
		key:          draftKey,
		autosave:     draft.NewDebouncer(c.delay),
	}
	if sub != nil {
		s.seed = prefill(*sub)
	}

	if saved != nil {
		s.estimate = saved.Estimate()
		s.prices = saved.Prices()
		s.restored = true
		if s.seed == nil {
			s.seed = saved.PrefilledData
		}
		log.Info("draft restored", slog.Time("saved_at", saved.SavedAt))
	} else {
		s.estimate = seedEstimate(s.seed)
		s.prices = prices
	}
	s.recompute()

	c.mu.Lock()
	c.sessions[id] = s
	c.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func prefill(sub storage.Submission) *storage.Prefill {
	return &storage.Prefill{
		SubmissionID: sub.ID,
		Client:       sub.Client,
		Superficie:   sub.Toiture.Superficie,
		Materiaux:    sub.Materiaux,
	}
}

// seedEstimate builds the starting state from a submission. Counts it carries are manual.
func seedEstimate(seed *storage.Prefill) estimate.Estimate {
	e := estimate.New()
	if seed == nil {
		return e
	}

	e = e.SetGeometry(estimate.Geometry{
		RoofArea:    seed.Superficie.Totale,
		ParapetArea: seed.Superficie.Parapets,
	})
	for k, v := range seed.Materiaux {
		m := constants.Material(k)
		if !constants.IsMaterial(m) {
			continue
		}
		e = e.SetQuantity(m, int(math.Round(v)))
	}
	return e
}

func (c *CalculatorService) State(id string) (Snapshot, error) {
	const op = "service.CalculatorService.State"

	s, err := c.session(id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Apply runs one user edit through the pipeline and schedules the autosave.
func (c *CalculatorService) Apply(ctx context.Context, id string, m Mutation) (Snapshot, error) {
	const op = "service.CalculatorService.Apply"

	s, err := c.session(id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var changed map[pricing.Key]float64
	s.estimate, s.prices, changed = m.apply(s.estimate, s.prices)
	s.recompute()

	if len(changed) > 0 {
		// ошибка цен не должна ломать расчёт
		if _, err := c.prices.Update(ctx, changed); err != nil {
			c.log.Error("failed to persist price overrides", slog.String("op", op), slog.String("error", err.Error()))
		}
	}

	c.scheduleDraft(s)

	return s.snapshot(), nil
}

// scheduleDraft freezes the current state now and writes it once the user is idle.
func (c *CalculatorService) scheduleDraft(s *session) {
	d := storage.NewDraft(s.key, s.estimate, s.prices, s.result, s.seed, c.now())

	s.autosave.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), draftWriteTimeout)
		defer cancel()

		if err := c.drafts.SaveDraft(ctx, d); err != nil {
			c.log.Error("failed to autosave draft", slog.String("key", d.Key), slog.String("error", err.Error()))
			return
		}
		c.log.Debug("draft autosaved", slog.String("key", d.Key))
	})
}

// Save writes the results to the submission, then drops the draft.
func (c *CalculatorService) Save(ctx context.Context, id string) (storage.Calculs, error) {
	const op = "service.CalculatorService.Save"

	s, err := c.session(id)
	if err != nil {
		return storage.Calculs{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submissionID == "" {
		return storage.Calculs{}, fmt.Errorf("%s: %w", op, ErrNoSubmission)
	}

	calculs := storage.Calculs{
		Results: s.result,
		SavedAt: c.now().UTC(),
	}
	if s.result.Summary.OverrideActive {
		summary := s.result.Summary
		calculs.CustomSubmission = &summary
	}

	status := constants.StatusQuoted
	patch := storage.SubmissionPatch{Status: &status, Calculs: &calculs}
	if err := c.submissions.PatchSubmission(ctx, s.submissionID, patch); err != nil {
		return storage.Calculs{}, fmt.Errorf("%s: %w", op, err)
	}

	s.autosave.Cancel()
	s.restored = false
	if err := c.drafts.DeleteDraft(ctx, s.key); err != nil {
		c.log.Error("failed to delete draft", slog.String("op", op), slog.String("error", err.Error()))
	}

	return calculs, nil
}

// Reset discards the draft and starts again from the submission.
func (c *CalculatorService) Reset(ctx context.Context, id string) (Snapshot, error) {
	const op = "service.CalculatorService.Reset"

	s, err := c.session(id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosave.Cancel()
	if err := c.drafts.DeleteDraft(ctx, s.key); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	s.estimate = seedEstimate(s.seed)
	s.prices = c.prices.Table()
	s.restored = false
	s.recompute()

	return s.snapshot(), nil
}

// Close writes any pending draft and forgets the session.
func (c *CalculatorService) Close(id string) error {
	const op = "service.CalculatorService.Close"

	id = normalizeID(id)

	c.mu.Lock()
	s, ok := c.sessions[id]
	delete(c.sessions, id)
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%s: id=%s: %w", op, id, ErrSessionNotFound)
	}

	s.autosave.Flush()
	return nil
}

// FlushAll writes every pending draft, used on shutdown.
func (c *CalculatorService) FlushAll() int {
	c.mu.Lock()
	sessions := make([]*session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.mu.Unlock()

	var n int
	for _, s := range sessions {
		if s.autosave.Flush() {
			n++
		}
	}
	return n
}

// Calculate is a one-shot computation that touches no session.
func (c *CalculatorService) Calculate(m Mutation) (estimate.Estimate, pricing.Table, estimate.Result) {
	e, prices, _ := m.apply(estimate.New(), c.prices.Table())
	e, res := estimate.Recompute(e, prices)
	return e, prices, res
}
