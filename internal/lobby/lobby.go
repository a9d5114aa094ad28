// Package lobby owns room lifecycle: creation, joining, starting, and
// reconnect-token bookkeeping. It knows nothing about game rules; once a
// room starts, its GameState is driven entirely through game.Manager.
package lobby

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lukev/catan_server/internal/game"
)

// roomCodeAlphabet excludes visually ambiguous characters (I, O, 0, 1).
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

const maxPlayers = 4

// RoomStatus is the lifecycle stage of a room.
type RoomStatus string

const (
	StatusWaiting    RoomStatus = "waiting"
	StatusInProgress RoomStatus = "in_progress"
	StatusFinished   RoomStatus = "finished"
)

// Seat is one joined player's lobby-level record: identity, reconnect
// token, and current connection state. The session host's websocket layer
// attaches/detaches its own connection handle by playerID; lobby itself
// never holds one.
type Seat struct {
	PlayerID        string
	DisplayName     string
	Color           game.Color
	ReconnectToken  string
	Connected       bool
}

// Room is one joinable/playable game room.
type Room struct {
	ID            string
	HostPlayerID  string
	Seats         []*Seat
	Status        RoomStatus
	CreatedAt     time.Time

	gameID string // key into the game.Manager, equal to ID once started
}

// SeatByPlayerID returns the seat for a player, if present.
func (r *Room) SeatByPlayerID(playerID string) *Seat {
	for _, s := range r.Seats {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}

// SeatByToken returns the seat matching a reconnect token, if present.
func (r *Room) SeatByToken(token string) *Seat {
	for _, s := range r.Seats {
		if s.ReconnectToken == token {
			return s
		}
	}
	return nil
}

// Manager tracks every open or in-progress room. It is the lobby-scoped
// owner referred to in spec §5: room create/list/join are serialized
// through this single mutex, distinct from each room's own GameState
// which, once started, is owned and serialized by game.Manager instead.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	games *game.Manager
	log   *logrus.Entry
}

// NewManager creates a lobby bound to the given game.Manager, which owns
// GameState for rooms once they start. logger may be nil, in which case a
// standalone logrus logger is used.
func NewManager(games *game.Manager, logger *logrus.Entry) *Manager {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Manager{
		rooms: make(map[string]*Room),
		games: games,
		log:   logger,
	}
}

// CreateRoom creates a new room with the creator as its first seat and
// host.
func (m *Manager) CreateRoom(hostPlayerID, hostDisplayName string) (*Room, *Seat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.generateUniqueCode()
	seat := &Seat{
		PlayerID:       hostPlayerID,
		DisplayName:    hostDisplayName,
		Color:          game.SeatColors[0],
		ReconnectToken: uuid.NewString(),
		Connected:      true,
	}
	room := &Room{
		ID:           id,
		HostPlayerID: hostPlayerID,
		Seats:        []*Seat{seat},
		Status:       StatusWaiting,
		CreatedAt:    time.Now(),
	}
	m.rooms[id] = room
	m.log.WithField("room_id", id).Info("room created")
	return room, seat
}

func (m *Manager) generateUniqueCode() string {
	for {
		code := randomRoomCode()
		if _, exists := m.rooms[code]; !exists {
			return code
		}
	}
}

func randomRoomCode() string {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("lobby: failed to read random bytes: %v", err))
	}
	out := make([]byte, roomCodeLength)
	for i, b := range buf {
		out[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(out)
}

// GetRoom looks up a room by id.
func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// ListRooms returns every room the lobby tracks, whatever its status;
// filtering to joinable rooms is left to the caller.
func (m *Manager) ListRooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// JoinRoom seats a new player in a waiting room with open capacity.
func (m *Manager) JoinRoom(roomID, playerID, displayName string) (*Room, *Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return nil, nil, fmt.Errorf("room not found")
	}
	if room.Status != StatusWaiting {
		return nil, nil, fmt.Errorf("room is not accepting players")
	}
	if len(room.Seats) >= maxPlayers {
		return nil, nil, fmt.Errorf("room is full")
	}
	for _, s := range room.Seats {
		if s.PlayerID == playerID {
			return nil, nil, fmt.Errorf("already seated in this room")
		}
	}

	seat := &Seat{
		PlayerID:       playerID,
		DisplayName:    displayName,
		Color:          game.SeatColors[len(room.Seats)],
		ReconnectToken: uuid.NewString(),
		Connected:      true,
	}
	room.Seats = append(room.Seats, seat)
	return room, seat, nil
}

// LeaveRoom removes a seated player from a room that hasn't started.
func (m *Manager) LeaveRoom(roomID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return fmt.Errorf("room not found")
	}
	if room.Status != StatusWaiting {
		return fmt.Errorf("cannot leave a room once play has started")
	}

	kept := make([]*Seat, 0, len(room.Seats))
	for _, s := range room.Seats {
		if s.PlayerID != playerID {
			kept = append(kept, s)
		}
	}
	room.Seats = kept

	if playerID == room.HostPlayerID && len(kept) > 0 {
		room.HostPlayerID = kept[0].PlayerID
	}
	if len(kept) == 0 {
		delete(m.rooms, roomID)
	}
	return nil
}

// StartGame transitions a waiting room into play: the caller must be the
// host, and the room must have 3-4 seated players.
func (m *Manager) StartGame(roomID, callerPlayerID string, seed uint64) (*game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room not found")
	}
	if room.Status != StatusWaiting {
		return nil, fmt.Errorf("game already started")
	}
	if room.HostPlayerID != callerPlayerID {
		return nil, fmt.Errorf("only the host can start the game")
	}
	if len(room.Seats) < 3 || len(room.Seats) > 4 {
		return nil, fmt.Errorf("game requires 3-4 players")
	}

	players := make([][2]string, 0, len(room.Seats))
	for _, s := range room.Seats {
		players = append(players, [2]string{s.PlayerID, s.DisplayName})
	}

	gs, err := m.games.CreateGame(roomID, players, seed)
	if err != nil {
		return nil, err
	}

	room.gameID = roomID
	room.Status = StatusInProgress
	m.log.WithFields(logrus.Fields{"room_id": roomID, "players": len(room.Seats)}).Info("game started")
	return gs, nil
}

// FindByToken scans every room for a seat matching a reconnect token.
func (m *Manager) FindByToken(token string) (*Room, *Seat, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if s := r.SeatByToken(token); s != nil {
			return r, s, true
		}
	}
	return nil, nil, false
}

// SetConnected updates a seat's connected flag.
func (m *Manager) SetConnected(roomID, playerID string, connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return
	}
	if s := room.SeatByPlayerID(playerID); s != nil {
		s.Connected = connected
	}
}
