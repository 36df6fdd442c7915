package contact

import (
	"context"
	"time"
)

// DefaultDelay is the simulated latency of the stub submitter.
const DefaultDelay = 1500 * time.Millisecond

// Delayed waits Delay before passing the message to Next. With a nil Next it
// is a stub that only simulates latency. If ctx ends first the timer is
// released and Next is never called.
type Delayed struct {
	Delay time.Duration
	Next  Submitter
}

func (d Delayed) Submit(ctx context.Context, m Message) error {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.Next == nil {
		return nil
	}
	return d.Next.Submit(ctx, m)
}
