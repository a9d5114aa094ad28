package game

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ActionMeta carries the bookkeeping the session host attaches to an
// inbound action: an idempotency key and the revision the client believes
// the room is at.
type ActionMeta struct {
	ActionID         string
	ExpectedRevision int
	SeatID           string
}

// ActionResult reports the outcome of a successful or duplicate dispatch.
type ActionResult struct {
	Revision  int
	Duplicate bool
}

// Manager owns every in-memory game in the process, keyed by room id. Each
// game's revision counter and applied-action ledger give the session host
// idempotent, optimistic-concurrency-checked dispatch without requiring
// the rule engine itself to know about either concept.
type Manager struct {
	mu              sync.RWMutex
	games           map[string]*GameState
	revisions       map[string]int
	appliedActionID map[string]map[string]int
	log             *logrus.Entry
}

// NewManager creates an empty game manager. logger may be nil, in which
// case a standalone logrus logger is used.
func NewManager(logger *logrus.Entry) *Manager {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Manager{
		games:           make(map[string]*GameState),
		revisions:       make(map[string]int),
		appliedActionID: make(map[string]map[string]int),
		log:             logger,
	}
}

// CreateGame initializes a new game state for a room and registers it.
func (m *Manager) CreateGame(gameID string, playerIDsAndNames [][2]string, seed uint64) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[gameID]; exists {
		return nil, fmt.Errorf("game %s already exists", gameID)
	}

	gs, err := NewGameState(gameID, playerIDsAndNames, seed)
	if err != nil {
		return nil, err
	}

	m.games[gameID] = gs
	m.revisions[gameID] = 0
	m.appliedActionID[gameID] = make(map[string]int)
	m.log.WithField("room_id", gameID).Info("game started")
	return gs, nil
}

// GetGame retrieves a game by id.
func (m *Manager) GetGame(gameID string) (*GameState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.games[gameID]
	return gs, ok
}

// GetRevision returns the current revision for a game.
func (m *Manager) GetRevision(gameID string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.games[gameID]; !ok {
		return 0, false
	}
	return m.revisions[gameID], true
}

// RemoveGame drops a finished or abandoned game from memory.
func (m *Manager) RemoveGame(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
	delete(m.revisions, gameID)
	delete(m.appliedActionID, gameID)
}

// ExecuteActionWithMeta validates meta (duplicate/stale-revision checks),
// then routes the action through Dispatch. A rejection from Dispatch
// (typed *RejectionError) is returned unwrapped so the session host can
// surface its Reason verbatim in an ACTION_REJECTED frame. A stale
// expected revision comes back as *RevisionMismatchError, and an unknown
// game id as a plain error.
func (m *Manager) ExecuteActionWithMeta(gameID string, action Action, meta ActionMeta) (*ActionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gs, ok := m.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s not found", gameID)
	}

	currentRevision := m.revisions[gameID]
	if meta.ActionID != "" {
		if _, exists := m.appliedActionID[gameID][meta.ActionID]; exists {
			return &ActionResult{Revision: currentRevision, Duplicate: true}, nil
		}
	}

	if meta.ExpectedRevision >= 0 && meta.ExpectedRevision != currentRevision {
		return nil, &RevisionMismatchError{Expected: meta.ExpectedRevision, Current: currentRevision}
	}

	if err := Dispatch(gs, action); err != nil {
		if rej, ok := err.(*RejectionError); ok {
			m.log.WithFields(logrus.Fields{
				"room_id": gameID,
				"action":  action.GetType().String(),
				"reason":  rej.Reason,
			}).Debug("action rejected")
		}
		return nil, err
	}

	currentRevision++
	m.revisions[gameID] = currentRevision
	if meta.ActionID != "" {
		m.appliedActionID[gameID][meta.ActionID] = currentRevision
	}

	return &ActionResult{Revision: currentRevision, Duplicate: false}, nil
}
