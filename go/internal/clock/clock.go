package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Virtual is the shared virtual clock: real time plus an adjustable offset.
// Clients move the offset to preview their team's timezones at another moment;
// the offset is last-write-wins, matching the broadcast protocol's semantics.
type Virtual struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	offset time.Duration
}

// NewVirtual creates a virtual clock over c. Pass a clockwork fake in tests.
func NewVirtual(c clockwork.Clock) *Virtual {
	return &Virtual{clock: c}
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.clock.Now().Add(v.offset)
}

// Offset returns the current adjustment.
func (v *Virtual) Offset() time.Duration {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// SetTime pins the virtual clock to t by recomputing the offset from the
// underlying clock's current reading.
func (v *Virtual) SetTime(t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = t.Sub(v.clock.Now())
}

// Adjust shifts the virtual clock by d.
func (v *Virtual) Adjust(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset += d
}

// Reset returns the virtual clock to real time.
func (v *Virtual) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = 0
}

// In converts t into the named IANA zone.
func In(t time.Time, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return t.In(loc), nil
}

// OffsetAt returns the named zone's UTC offset at time t.
func OffsetAt(zone string, t time.Time) (time.Duration, error) {
	local, err := In(t, zone)
	if err != nil {
		return 0, err
	}
	_, seconds := local.Zone()
	return time.Duration(seconds) * time.Second, nil
}
