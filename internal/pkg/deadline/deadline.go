// Package deadline bounds a unit of work with a cooperative wall-clock limit.
//
// The limit is advisory: the timer only records that the deadline passed, it
// never interrupts the work. OCR runs as a blocking native call that cannot
// be preempted, so if the work is truly stuck the call to Run blocks past
// the limit and the timeout is reported once the work finally returns. This
// is a deliberate contract, not a gap to be fixed with goroutine-and-select,
// which would hand back control while the work still held its resources.
package deadline

import (
	"sync/atomic"
	"time"

	"github.com/amanie-labs/docscan/internal/domain"
)

// Run executes work on the calling goroutine. The timer is always stopped
// before the timeout flag is evaluated. A work error takes precedence over
// the flag; a result produced after the deadline fired is discarded and
// reported as domain.ErrDeadlineExceeded.
func Run[T any](work func() (T, error), limit time.Duration) (T, error) {
	var late atomic.Bool
	timer := time.AfterFunc(limit, func() { late.Store(true) })

	out, err := work()
	timer.Stop()

	if err != nil {
		return out, err
	}
	if late.Load() {
		var zero T
		return zero, domain.ErrDeadlineExceeded
	}
	return out, nil
}
