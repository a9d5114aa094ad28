package websocket

import (
	"encoding/binary"

	"crypto/rand"

	"github.com/google/uuid"
)

// newPlayerID mints an opaque per-connection player identity. It is
// independent of the reconnect token: the token survives a disconnect,
// this id is minted fresh whenever a websocket session joins or creates a
// room from scratch.
func newPlayerID() string {
	return uuid.NewString()
}

// newBoardSeed draws a fresh seed for NewGameState from the OS CSPRNG.
// Games started this way are not reproducible across process restarts;
// determinism only guarantees that replaying a fixed (seed, action
// sequence) pair is bit-identical, not that seeds repeat.
func newBoardSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("websocket: failed to read random seed bytes: " + err.Error())
	}
	return binary.BigEndian.Uint64(buf[:])
}
