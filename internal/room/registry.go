package room

import (
	"crypto/rand"
	"sync"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Registry maps live room codes to rooms. It is the only state shared across
// connections; all map mutation happens under its lock.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom mints a room under a fresh code. Codes are sparse relative to
// the code space, so the collision retry loop rarely runs twice.
func (that *Registry) CreateRoom() *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	for {
		code := generateCode()
		if _, exists := that.rooms[code]; exists {
			continue
		}

		created := New(code)
		that.rooms[code] = created

		return created
	}
}

func (that *Registry) Get(code string) (*Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	found, exists := that.rooms[code]
	if !exists {
		return nil, apperror.ErrRoomNotFound
	}

	return found, nil
}

// Remove drops a room. Removing an absent code is a no-op.
func (that *Registry) Remove(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, code)
}

// FindByPlayer locates the room a connection is seated in, if any. A
// connection is seated in at most one room at a time.
func (that *Registry) FindByPlayer(connID string) (*Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, candidate := range that.rooms {
		if _, seated := candidate.Seat(connID); seated {
			return candidate, true
		}
	}

	return nil, false
}

func generateCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}

	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}

	return string(buf)
}
