package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	id := idx.NewRequestID()
	require.Len(t, id.String(), 26)

	parsed, err := idx.ParseRequestID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestRequestIDsSortWithinOneMillisecond(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	a := idx.NewRequestIDAt(at)
	b := idx.NewRequestIDAt(at)

	require.Less(t, a.String(), b.String())
}

func TestParseRequestIDRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "req-123"} {
		_, err := idx.ParseRequestID(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestSequenceFollowsClock(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	seq := idx.NewSequenceWithClock(func() time.Time { return now })

	require.Equal(t, int64(1_700_000_000_000), seq.Next())

	now = now.Add(5 * time.Millisecond)
	require.Equal(t, int64(1_700_000_000_005), seq.Next())
}

func TestSequenceNeverRepeatsWithinSameInstant(t *testing.T) {
	frozen := time.UnixMilli(42_000)
	seq := idx.NewSequenceWithClock(func() time.Time { return frozen })

	a := seq.Next()
	b := seq.Next()
	c := seq.Next()

	require.Equal(t, int64(42_000), a)
	require.Equal(t, a+1, b)
	require.Equal(t, b+1, c)
}

func TestSequenceObserveSkipsStoredIDs(t *testing.T) {
	frozen := time.UnixMilli(1_000)
	seq := idx.NewSequenceWithClock(func() time.Time { return frozen })

	seq.Observe(5_000)
	require.Equal(t, int64(5_001), seq.Next())

	// Observing an older id must not move the sequence backwards
	seq.Observe(10)
	require.Equal(t, int64(5_002), seq.Next())
	require.Equal(t, int64(5_002), seq.Last())
}

func TestSequenceConcurrentUnique(t *testing.T) {
	seq := idx.NewSequence()

	const workers, perWorker = 8, 200
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id := seq.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
}

func TestTimeOf(t *testing.T) {
	tm := time.UnixMilli(1_700_000_123_456).UTC()
	require.Equal(t, tm, idx.TimeOf(tm.UnixMilli()))
}
