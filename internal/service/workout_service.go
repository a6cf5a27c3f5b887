package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/domain"
	"hooplogs/workout-service/internal/planner"
	"hooplogs/workout-service/internal/progress"
	"hooplogs/workout-service/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrInvalidFocus         = planner.ErrInvalidFocus
	ErrNoPendingFocusChange = errors.New("no focus change pending confirmation")
	ErrNoActivePlan         = errors.New("no active plan for user")
)

const (
	persistTimeout = 10 * time.Second
	writeQueueSize = 256
)

// PlanCache is the local fast tier consumed by the service. Implementations
// must treat failures as non-fatal; the methods carry no error returns on
// purpose.
type PlanCache interface {
	GetState(ctx context.Context, userID string) (*domain.WorkoutPlanDocument, bool)
	SetState(ctx context.Context, doc *domain.WorkoutPlanDocument)
	Clear(ctx context.Context, userID string)
	LegacyState(ctx context.Context) (*domain.WorkoutPlanDocument, bool)
	ClearLegacy(ctx context.Context)
}

// WorkoutState is the read snapshot handed to the presentation layer.
type WorkoutState struct {
	Plan            *domain.Plan               `json:"plan,omitempty"`
	CompletedDates  []string                   `json:"completedDates"`
	DrillProgress   map[string]map[string]bool `json:"drillProgress"`
	ProgressPercent int                        `json:"progressPercent"`
	TodayDate       string                     `json:"todayDate"`
	Today           *domain.DayEntry           `json:"today,omitempty"`
	TodayComplete   bool                       `json:"todayComplete"`
	PendingFocusKey string                     `json:"pendingFocusKey,omitempty"`
	SaveFailed      bool                       `json:"saveFailed"`
}

// FocusChangeResult reports the outcome of a focus selection: either the
// plan was (re)created, or the change is destructive and awaits explicit
// confirmation.
type FocusChangeResult struct {
	ConfirmationRequired bool          `json:"confirmationRequired"`
	PendingFocusKey      string        `json:"pendingFocusKey,omitempty"`
	State                *WorkoutState `json:"state,omitempty"`
}

// WorkoutService reconciles per-user plan state between the in-memory
// session, the Redis cache tier and the authoritative Mongo document, and
// exposes every workout action the presentation layer needs.
type WorkoutService interface {
	Load(ctx context.Context, userID string) (*WorkoutState, error)
	State(ctx context.Context, userID string) (*WorkoutState, error)
	History(ctx context.Context, userID string) ([]progress.CompletedDay, error)
	SelectFocus(ctx context.Context, userID, focusKey string) (*FocusChangeResult, error)
	ConfirmFocusChange(ctx context.Context, userID string) (*WorkoutState, error)
	CancelFocusChange(ctx context.Context, userID string) error
	ToggleDrill(ctx context.Context, userID, date string, drillIndex int) (*WorkoutState, error)
	MarkDayComplete(ctx context.Context, userID, date string) (*WorkoutState, error)
	ResetPlan(ctx context.Context, userID string) (*WorkoutState, error)
	// Flush blocks until all persistence writes issued so far are applied.
	Flush()
	// Close drains the persistence queue and stops the writer.
	Close()
}

// session is the live state for one user: the progress store plus the
// transient two-step focus-change protocol and the saving-failed advisory.
type session struct {
	store        *progress.Store
	pendingFocus string
	saveFailed   bool
}

type writeOp struct {
	id     string
	userID string
	apply  func(ctx context.Context) error
}

type workoutService struct {
	repo      repository.WorkoutPlanRepository
	cache     PlanCache
	generator *planner.Generator
	catalog   *catalog.Catalog
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	queue      chan writeOp
	writerDone chan struct{}
}

// Option tweaks service construction (tests inject a fixed clock).
type Option func(*workoutService)

func WithClock(now func() time.Time) Option {
	return func(s *workoutService) { s.now = now }
}

// NewWorkoutService creates the service and starts its persistence writer.
func NewWorkoutService(
	repo repository.WorkoutPlanRepository,
	cache PlanCache,
	generator *planner.Generator,
	cat *catalog.Catalog,
	opts ...Option,
) WorkoutService {
	s := &workoutService{
		repo:       repo,
		cache:      cache,
		generator:  generator,
		catalog:    cat,
		now:        time.Now,
		sessions:   map[string]*session{},
		queue:      make(chan writeOp, writeQueueSize),
		writerDone: make(chan struct{}),
	}
	go s.writerLoop()
	return s
}

// === Loading & migration ===

// Load establishes (or refreshes) the user's session: one-time legacy
// migration, remote read with cache fallback, normalization, cache seeding
// and today-coverage repair. The returned snapshot reflects the remote
// document whenever it was reachable.
func (s *workoutService) Load(ctx context.Context, userID string) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.loadSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.sessions[userID] = sess
	return s.snapshot(userID, sess), nil
}

func (s *workoutService) loadSession(ctx context.Context, userID string) (*session, error) {
	s.migrateLegacy(ctx, userID)

	var doc *domain.WorkoutPlanDocument
	remote, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
		doc = remote
	case errors.Is(err, repository.ErrNotFound):
		// New user, nothing stored anywhere.
	default:
		// Remote unavailable: degrade to the cached copy so the session
		// still opens with the last known state.
		log.Warnf("workout service: remote read for %s failed, falling back to cache: %s", userID, err)
		if cached, ok := s.cache.GetState(ctx, userID); ok {
			doc = cached
		}
	}

	sess := &session{}
	if doc == nil {
		sess.store = progress.NewStore(nil, domain.NewProgressState())
		return sess, nil
	}

	domain.NormalizeSchedule(doc.Plan, s.catalog)
	plan, state := doc.PlanState()
	sess.store = progress.NewStore(plan, state)

	s.ensureTodayCoverage(userID, sess)

	// Seed the cache so the next load survives a remote outage.
	s.cache.SetState(ctx, s.document(userID, sess))
	return sess, nil
}

// migrateLegacy performs the one-time move of pre-user-scoping cache data
// into the user's remote document. Gated on "remote document absent": if
// another session created one concurrently, remote wins and the legacy
// data is discarded without migrating.
func (s *workoutService) migrateLegacy(ctx context.Context, userID string) {
	legacy, ok := s.cache.LegacyState(ctx)
	if !ok {
		return
	}

	if _, err := s.repo.Get(ctx, userID); err == nil {
		s.cache.ClearLegacy(ctx)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		// Remote unreachable; keep the legacy keys and retry next load.
		return
	}

	domain.NormalizeSchedule(legacy.Plan, s.catalog)
	legacy.UserID = userID
	if legacy.Days == 0 {
		legacy.Days = planner.PlanDays
	}
	if legacy.StartDate == "" {
		legacy.StartDate = domain.FormatDate(s.now())
	}

	if err := s.repo.Set(ctx, legacy); err != nil {
		log.Warnf("workout service: legacy migration for %s failed: %s", userID, err)
		return
	}
	log.Infof("workout service: migrated legacy plan data for user %s", userID)
	s.cache.ClearLegacy(ctx)
}

// ensureTodayCoverage repairs a defensive gap: today falls inside the plan
// window but has no entry. A fresh plan for the same focus and start is
// generated and only the missing dates merged in; existing entries and all
// progress stay untouched.
func (s *workoutService) ensureTodayCoverage(userID string, sess *session) {
	plan := sess.store.Plan()
	if plan == nil || plan.FocusKey == "" {
		return
	}
	today := domain.FormatDate(s.now())
	if !plan.Covers(today) {
		return
	}
	if _, ok := plan.Entry(today); ok {
		return
	}

	start, err := domain.ParseDate(plan.StartDate)
	if err != nil {
		log.Warnf("workout service: plan for %s has invalid start date %q", userID, plan.StartDate)
		return
	}
	fresh, err := s.generator.Generate(plan.FocusKey, start)
	if err != nil {
		return
	}
	for date, entry := range fresh.Schedule {
		if _, exists := plan.Schedule[date]; !exists {
			plan.Schedule[date] = entry
		}
	}
	log.Infof("workout service: repaired schedule gap for user %s around %s", userID, today)
	s.enqueueFields(userID, sess, map[string]any{"plan": plan.Schedule})
}

// === Reads ===

func (s *workoutService) State(ctx context.Context, userID string) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(userID, sess), nil
}

func (s *workoutService) History(ctx context.Context, userID string) ([]progress.CompletedDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := sess.store.History()
	if items == nil {
		items = []progress.CompletedDay{}
	}
	return items, nil
}

// === Focus selection (two-step protocol) ===

// SelectFocus starts a new plan for the category, unless a plan with
// recorded progress would be destroyed: then the change is parked as
// pending and must be confirmed or cancelled.
func (s *workoutService) SelectFocus(ctx context.Context, userID, focusKey string) (*FocusChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog.Get(focusKey); !ok {
		return nil, ErrInvalidFocus
	}
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := sess.store.Plan()
	state := sess.store.State()
	if plan != nil && plan.FocusKey != "" && plan.FocusKey != focusKey && state.HasProgress() {
		sess.pendingFocus = focusKey
		return &FocusChangeResult{
			ConfirmationRequired: true,
			PendingFocusKey:      focusKey,
			State:                s.snapshot(userID, sess),
		}, nil
	}

	if err := s.startPlan(userID, sess, focusKey); err != nil {
		return nil, err
	}
	return &FocusChangeResult{State: s.snapshot(userID, sess)}, nil
}

func (s *workoutService) ConfirmFocusChange(ctx context.Context, userID string) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.pendingFocus == "" {
		return nil, ErrNoPendingFocusChange
	}
	if err := s.startPlan(userID, sess, sess.pendingFocus); err != nil {
		return nil, err
	}
	return s.snapshot(userID, sess), nil
}

func (s *workoutService) CancelFocusChange(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return err
	}
	sess.pendingFocus = ""
	return nil
}

// startPlan generates a brand-new plan, discards all prior progress and
// persists the full document.
func (s *workoutService) startPlan(userID string, sess *session, focusKey string) error {
	newPlan, err := s.generator.Generate(focusKey, s.now())
	if err != nil {
		return err
	}
	sess.store = progress.NewStore(newPlan, domain.NewProgressState())
	sess.pendingFocus = ""
	s.enqueueFull(userID, sess)
	return nil
}

// === Progress mutations ===

// ToggleDrill flips one drill flag for the date (today when empty). The
// in-memory state is updated synchronously and stays authoritative for the
// session; persistence happens asynchronously in issue order.
func (s *workoutService) ToggleDrill(ctx context.Context, userID, date string, drillIndex int) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = domain.FormatDate(s.now())
	}
	if sess.store.ToggleDrill(date, drillIndex) {
		state := sess.store.State()
		s.enqueueFields(userID, sess, map[string]any{
			"drillProgress":  state.DrillProgress,
			"completedDates": state.CompletedDates,
		})
	}
	return s.snapshot(userID, sess), nil
}

// MarkDayComplete records the date (today when empty) as done, bypassing
// per-drill toggling. Idempotent.
func (s *workoutService) MarkDayComplete(ctx context.Context, userID, date string) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.store.Plan() == nil {
		return nil, ErrNoActivePlan
	}
	if date == "" {
		date = domain.FormatDate(s.now())
	}
	if sess.store.MarkDayComplete(date) {
		state := sess.store.State()
		s.enqueueFields(userID, sess, map[string]any{
			"completedDates": state.CompletedDates,
		})
	}
	return s.snapshot(userID, sess), nil
}

// ResetPlan clears the plan and all progress, persisting an empty document.
func (s *workoutService) ResetPlan(ctx context.Context, userID string) (*WorkoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.ensureSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess.store = progress.NewStore(nil, domain.NewProgressState())
	sess.pendingFocus = ""
	s.enqueueFull(userID, sess)
	return s.snapshot(userID, sess), nil
}

// === Session plumbing ===

// ensureSession returns the live session, loading one when the user has
// none yet. Callers hold s.mu.
func (s *workoutService) ensureSession(ctx context.Context, userID string) (*session, error) {
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	sess, err := s.loadSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.sessions[userID] = sess
	return sess, nil
}

func (s *workoutService) snapshot(userID string, sess *session) *WorkoutState {
	state := sess.store.State()
	today := domain.FormatDate(s.now())
	return &WorkoutState{
		Plan:            sess.store.Plan(),
		CompletedDates:  state.CompletedDates,
		DrillProgress:   state.DrillProgress,
		ProgressPercent: sess.store.ProgressPercent(),
		TodayDate:       today,
		Today:           sess.store.EntryFor(today),
		TodayComplete:   state.IsCompleted(today),
		PendingFocusKey: sess.pendingFocus,
		SaveFailed:      sess.saveFailed,
	}
}

// document assembles the full composite document from the session, used to
// mirror state into the cache alongside every remote write.
func (s *workoutService) document(userID string, sess *session) *domain.WorkoutPlanDocument {
	plan := sess.store.Plan()
	if plan == nil {
		plan = &domain.Plan{Days: planner.PlanDays, Schedule: map[string]domain.DayEntry{}}
	}
	return domain.NewDocument(userID, plan, sess.store.State())
}

// === Persistence queue ===

// enqueueFields queues a partial remote update plus a cache mirror of the
// current full state. Callers hold s.mu; the document snapshot is taken
// here so later mutations cannot leak into an earlier write.
func (s *workoutService) enqueueFields(userID string, sess *session, fields map[string]any) {
	mirror := s.document(userID, sess)
	s.enqueue(userID, func(ctx context.Context) error {
		if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
			return err
		}
		s.cache.SetState(ctx, mirror)
		return nil
	})
}

// enqueueFull queues a wholesale document replace plus the cache mirror.
func (s *workoutService) enqueueFull(userID string, sess *session) {
	doc := s.document(userID, sess)
	s.enqueue(userID, func(ctx context.Context) error {
		if err := s.repo.Set(ctx, doc); err != nil {
			return err
		}
		s.cache.SetState(ctx, doc)
		return nil
	})
}

func (s *workoutService) enqueue(userID string, apply func(ctx context.Context) error) {
	op := writeOp{id: uuid.NewString(), userID: userID, apply: apply}
	select {
	case s.queue <- op:
	default:
		// Queue full: apply inline rather than drop the write. Ordering is
		// preserved because s.mu is still held by the caller.
		log.Warnf("workout service: persistence queue full, applying op %s inline", op.id)
		err := s.applyOp(op)
		if sess, ok := s.sessions[userID]; ok {
			sess.saveFailed = err != nil
		}
	}
}

// writerLoop applies persistence writes strictly in issue order. Failures
// never surface to the user action that triggered them; they flip the
// session's saving-failed advisory and are retried implicitly by the next
// write or load.
func (s *workoutService) writerLoop() {
	defer close(s.writerDone)
	for op := range s.queue {
		s.runOp(op)
	}
}

func (s *workoutService) runOp(op writeOp) {
	err := s.applyOp(op)
	s.setSaveFailed(op.userID, err != nil)
}

func (s *workoutService) applyOp(op writeOp) error {
	if op.apply == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	err := op.apply(ctx)
	if err != nil {
		log.Warnf("workout service: persist op %s for user %s failed: %s", op.id, op.userID, err)
	}
	return err
}

func (s *workoutService) setSaveFailed(userID string, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.saveFailed = failed
	}
}

// Flush blocks until every write queued before the call has been applied.
func (s *workoutService) Flush() {
	done := make(chan struct{})
	s.queue <- writeOp{apply: func(context.Context) error {
		close(done)
		return nil
	}}
	<-done
}

// Close drains the queue and stops the writer goroutine.
func (s *workoutService) Close() {
	close(s.queue)
	<-s.writerDone
}
