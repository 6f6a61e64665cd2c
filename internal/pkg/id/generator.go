package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// shortIDLength is the number of random hex characters carried after an
// identifier prefix. 48 bits is plenty for a namespace that never
// exceeds a few million live entries.
const shortIDLength = 12

var randReader = rand.Reader

// NewJobID generates a new public job identifier.
func NewJobID() string {
	return "job_" + randomHex(shortIDLength)
}

// NewReservationID generates a new device reservation identifier.
func NewReservationID() string {
	return "rsv_" + randomHex(shortIDLength)
}

// NewUUID generates a new UUID v4. Kernel-side jobs use full UUIDs.
func NewUUID() string {
	return uuid.New().String()
}

// ValidateUUID validates a UUID format
func ValidateUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// randomHex returns n random lowercase hex characters.
func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := randReader.Read(buf); err != nil {
		// Fallback to time-based ID if random fails
		return fmt.Sprintf("%0*x", n, time.Now().UnixNano())[:n]
	}
	return hex.EncodeToString(buf)[:n]
}
