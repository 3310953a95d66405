package pkg

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength = 6
)

// GenerateRoomCode returns a short shareable code. Uniqueness is the
// caller's concern; codes are random, not guaranteed distinct.
func GenerateRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeChars[randInt(len(codeChars))]
	}

	return string(b)
}

func GenerateRoomID() string {
	return uuid.NewString()
}

func GeneratePlayerID() string {
	return uuid.NewString()
}

// randInt returns a uniform value in [0, max). Falls back to a clock-based
// value only if the system entropy source is unreadable.
func randInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return int(time.Now().UnixNano()) % max
	}

	return int(n.Int64())
}
