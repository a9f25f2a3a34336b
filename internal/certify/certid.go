package certify

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const certIDPrefix = "CERT"

// ErrIDExhausted is returned when ten consecutive candidates collided.
// The original scheme silently kept the last colliding id; failing loudly
// is the safer contract for a unique column.
var ErrIDExhausted = errors.New("certificate id space exhausted after 10 attempts")

// GenerateID builds a human-readable certificate id of the form
// CERT-YYYYMMDD-SS-RRRR. The date derives from the event date (now when
// zero), SS is a random 01-99 sequence unless one is supplied, and RRRR is
// a random number in 1000-9999.
func GenerateID(eventDate time.Time, sequence int) string {
	date := eventDate
	if date.IsZero() {
		date = time.Now()
	}

	seq := sequence
	if seq <= 0 {
		seq = rand.Intn(99) + 1
	}

	random := rand.Intn(9000) + 1000

	return fmt.Sprintf("%s-%s-%02d-%d", certIDPrefix, date.Format("20060102"), seq, random)
}

// GenerateUniqueID generates candidates until the exists callback reports
// a free id, retrying on collision up to ten times before failing with
// ErrIDExhausted.
func GenerateUniqueID(eventDate time.Time, exists func(id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id := GenerateID(eventDate, 0)

		taken, err := exists(id)
		if err != nil {
			return "", fmt.Errorf("certificate id uniqueness check: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
