// Package idx hands out identifiers: int64 record ids from a Sequence and
// ULID request ids for correlating log lines.
package idx

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a string that is not a ULID.
var ErrInvalid = errors.New("idx: invalid ulid")

// RequestID is a ULID string. It sorts by creation time.
type RequestID string

var requestEntropy = struct {
	sync.Mutex
	src *ulid.MonotonicEntropy
}{src: ulid.Monotonic(rand.Reader, 0)}

// NewRequestID returns a request id stamped with the current time.
func NewRequestID() RequestID {
	return NewRequestIDAt(time.Now())
}

// NewRequestIDAt returns a request id stamped with t. Ids made within the
// same millisecond still sort in creation order.
func NewRequestIDAt(t time.Time) RequestID {
	requestEntropy.Lock()
	defer requestEntropy.Unlock()

	return RequestID(ulid.MustNew(ulid.Timestamp(t), requestEntropy.src).String())
}

// ParseRequestID accepts only canonical ULIDs.
func ParseRequestID(s string) (RequestID, error) {
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return RequestID(s), nil
}

func (id RequestID) String() string { return string(id) }
