package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// SessionManager holds the in-memory sessions, one per client view, and
// drives their countdowns. Lock order: manager mu, then session mu.
type SessionManager struct {
	store        QuestionStore
	storeType    string
	preparer     *Preparer
	notifier     Notifier
	log          *zap.Logger
	tickInterval time.Duration
	sessionTTL   time.Duration
	fetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*liveSession
	byClient map[string]string
	loads    map[string]uint64
	loadSeq  uint64
}

type liveSession struct {
	*Session
	stopClock context.CancelFunc // guarded by SessionManager.mu
}

func NewSessionManager(store QuestionStore, preparer *Preparer, notifier Notifier, cfg *Config, log *zap.Logger) *SessionManager {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &SessionManager{
		store:        store,
		storeType:    cfg.Store.Type,
		preparer:     preparer,
		notifier:     notifier,
		log:          log,
		tickInterval: cfg.Exam.TickInterval,
		sessionTTL:   cfg.Exam.SessionTTL,
		fetchTimeout: cfg.Store.FetchTimeout,
		ctx:          ctx,
		cancel:       cancel,
		sessions:     make(map[string]*liveSession),
		byClient:     make(map[string]string),
		loads:        make(map[string]uint64),
	}
	if m.sessionTTL > 0 {
		m.wg.Add(1)
		go m.runReaper()
	}
	return m
}

// Start loads a topic, prepares its question set and opens a session for
// the client, replacing the client's previous session. A load that finishes
// after the same client started a newer one is discarded.
func (m *SessionManager) Start(ctx context.Context, clientID, slug string, requested int) (*Session, Prepared, error) {
	ctx, span := tracer.Start(ctx, "SessionManager.Start")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.topic", slug), attribute.Int("quiz.requested", requested))

	gen := m.beginLoad(clientID)
	defer m.endLoad(clientID, gen)

	fetchCtx := ctx
	if m.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, m.fetchTimeout)
		defer cancel()
	}
	raw, err := m.store.Fetch(fetchCtx, slug)
	if err != nil {
		storeFetchErrors.WithLabelValues(m.storeType).Inc()
		span.SetStatus(codes.Error, err.Error())
		m.log.Error("question set fetch failed", zap.String("topic", slug), zap.String("store", m.storeType), zap.Error(err))
		return nil, Prepared{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Prepared{}, err
	}

	prepared := m.preparer.Prepare(raw, requested)
	for _, w := range prepared.Warnings {
		prepareWarnings.WithLabelValues(w.Kind).Inc()
		m.log.Warn("question set warning",
			zap.String("topic", slug),
			zap.String("kind", w.Kind),
			zap.String("question", w.QuestionID),
			zap.String("detail", w.Message),
		)
	}
	if len(prepared.Questions) == 0 {
		return nil, prepared, ErrNoQuestions
	}

	m.mu.Lock()
	if m.loads[clientID] != gen {
		m.mu.Unlock()
		m.log.Info("discarding superseded load", zap.String("topic", slug), zap.String("client", clientID))
		return nil, prepared, ErrSuperseded
	}
	prevID, replaced := m.byClient[clientID]
	if replaced {
		m.removeLocked(prevID)
	}
	s := NewSession(uuid.NewString(), clientID, slug, prepared.Questions)
	ls := &liveSession{Session: s}
	m.sessions[s.ID] = ls
	m.byClient[clientID] = s.ID
	m.startClockLocked(ls)
	activeSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	if replaced {
		m.notifier.Close(prevID)
	}
	sessionsStarted.WithLabelValues(slug).Inc()
	m.log.Info("session started",
		zap.String("session", s.ID),
		zap.String("topic", slug),
		zap.Int("questions", len(prepared.Questions)),
		zap.Int("requested", requested),
	)
	return s, prepared, nil
}

func (m *SessionManager) beginLoad(clientID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadSeq++
	m.loads[clientID] = m.loadSeq
	return m.loadSeq
}

func (m *SessionManager) endLoad(clientID string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loads[clientID] == gen {
		delete(m.loads, clientID)
	}
}

// Get returns the client's session and marks it as seen.
func (m *SessionManager) Get(id, clientID string) (*Session, error) {
	m.mu.Lock()
	ls, err := m.lookupLocked(id, clientID)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	ls.touch()
	return ls.Session, nil
}

func (m *SessionManager) lookupLocked(id, clientID string) (*liveSession, error) {
	ls, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if ls.ClientID != clientID {
		return nil, ErrForbidden
	}
	return ls, nil
}

func (m *SessionManager) Answer(id, clientID string, index int, selected string) (Snapshot, bool, error) {
	s, err := m.Get(id, clientID)
	if err != nil {
		return Snapshot{}, false, err
	}
	applied, err := s.Answer(index, selected)
	if err != nil {
		return Snapshot{}, false, err
	}
	return m.publish(s), applied, nil
}

// RequestSubmit also returns the unanswered count shown in the confirmation.
func (m *SessionManager) RequestSubmit(id, clientID string) (Snapshot, int, bool, error) {
	s, err := m.Get(id, clientID)
	if err != nil {
		return Snapshot{}, 0, false, err
	}
	unanswered, applied := s.RequestSubmit()
	return m.publish(s), unanswered, applied, nil
}

func (m *SessionManager) ConfirmSubmit(id, clientID string) (Snapshot, bool, error) {
	m.mu.Lock()
	ls, err := m.lookupLocked(id, clientID)
	if err != nil {
		m.mu.Unlock()
		return Snapshot{}, false, err
	}
	applied := ls.ConfirmSubmit()
	if applied {
		m.stopClockLocked(ls)
	}
	m.mu.Unlock()

	if applied {
		sessionsSubmitted.WithLabelValues("confirmed").Inc()
		m.log.Info("session submitted", zap.String("session", id), zap.String("reason", "confirmed"))
	}
	return m.publish(ls.Session), applied, nil
}

func (m *SessionManager) CancelSubmit(id, clientID string) (Snapshot, bool, error) {
	s, err := m.Get(id, clientID)
	if err != nil {
		return Snapshot{}, false, err
	}
	applied := s.CancelSubmit()
	return m.publish(s), applied, nil
}

// Restart resets answers and time on the same question sequence and runs a
// fresh countdown.
func (m *SessionManager) Restart(id, clientID string) (Snapshot, error) {
	m.mu.Lock()
	ls, err := m.lookupLocked(id, clientID)
	if err != nil {
		m.mu.Unlock()
		return Snapshot{}, err
	}
	ls.Restart()
	m.startClockLocked(ls)
	m.mu.Unlock()

	m.log.Info("session restarted", zap.String("session", id))
	return m.publish(ls.Session), nil
}

func (m *SessionManager) Teardown(id, clientID string) error {
	m.mu.Lock()
	if _, err := m.lookupLocked(id, clientID); err != nil {
		m.mu.Unlock()
		return err
	}
	m.removeLocked(id)
	m.mu.Unlock()

	m.notifier.Close(id)
	m.log.Info("session closed", zap.String("session", id))
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown stops every countdown and the reaper and drops all sessions.
func (m *SessionManager) Shutdown() {
	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		m.removeLocked(id)
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.notifier.Close(id)
	}
}

// removeLocked drops the session and stops its clock. Callers close its
// streams after releasing mu.
func (m *SessionManager) removeLocked(id string) {
	ls, ok := m.sessions[id]
	if !ok {
		return
	}
	m.stopClockLocked(ls)
	delete(m.sessions, id)
	if m.byClient[ls.ClientID] == id {
		delete(m.byClient, ls.ClientID)
	}
	activeSessions.Set(float64(len(m.sessions)))
}

// publish pushes a fresh snapshot. Subscribers order pushes by Seq, so a
// tick snapshot taken before a transition never overwrites it.
func (m *SessionManager) publish(s *Session) Snapshot {
	snap := s.Snapshot()
	m.notifier.Broadcast(s.ID, WSMessage{Type: MsgSnapshot, Seq: snap.Seq, Data: snap})
	return snap
}

// --- countdown ---

func (m *SessionManager) startClockLocked(ls *liveSession) {
	m.stopClockLocked(ls)
	if ls.State().Phase == PhaseSubmitted {
		return
	}
	ctx, cancel := context.WithCancel(m.ctx)
	ls.stopClock = cancel
	epoch := ls.Epoch()
	m.wg.Add(1)
	go m.runClock(ctx, ls, epoch)
}

func (m *SessionManager) stopClockLocked(ls *liveSession) {
	if ls.stopClock != nil {
		ls.stopClock()
		ls.stopClock = nil
	}
}

func (m *SessionManager) runClock(ctx context.Context, ls *liveSession, epoch uint64) {
	defer m.wg.Done()
	defer m.endClock(ls, epoch)
	s := ls.Session
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			running, expired, ticked := s.tickEpoch(epoch)
			if ticked {
				snap := s.Snapshot()
				m.notifier.Broadcast(s.ID, WSMessage{Type: MsgTick, Seq: snap.Seq, Data: snap})
			}
			if expired {
				sessionsSubmitted.WithLabelValues("timeout").Inc()
				m.log.Info("session submitted", zap.String("session", s.ID), zap.String("reason", "timeout"))
			}
			if !running {
				return
			}
		}
	}
}

// endClock releases the clock's context unless a restart already replaced it.
func (m *SessionManager) endClock(ls *liveSession, epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ls.Epoch() == epoch {
		m.stopClockLocked(ls)
	}
}

// --- idle sessions ---

func (m *SessionManager) runReaper() {
	defer m.wg.Done()
	ticker := time.NewTicker(max(min(m.sessionTTL/2, time.Minute), time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.reap(now); n > 0 {
				m.log.Info("reaped idle sessions", zap.Int("count", n))
			}
		}
	}
}

func (m *SessionManager) reap(now time.Time) int {
	m.mu.Lock()
	var idle []string
	for id, ls := range m.sessions {
		if now.Sub(ls.idleSince()) > m.sessionTTL {
			m.removeLocked(id)
			idle = append(idle, id)
		}
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.notifier.Close(id)
	}
	return len(idle)
}
