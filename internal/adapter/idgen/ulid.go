package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunIDSource issues run ids. Ids are ULIDs stamped with the run start, so
// runs sharing a log sink sort by start time.
type RunIDSource struct {
	now     func() time.Time
	entropy io.Reader
}

// NewRunIDSource creates a RunIDSource. It is not safe for concurrent use.
func NewRunIDSource() *RunIDSource {
	return &RunIDSource{
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns a new run id. Ids issued within the same millisecond are
// strictly increasing.
func (s *RunIDSource) Next() (string, error) {
	id, err := ulid.New(ulid.Timestamp(s.now()), s.entropy)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
