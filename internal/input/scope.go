package input

import (
	"context"
	"sync"
)

// Detach releases listeners added by a tracker's Attach.
// It is safe to call more than once.
type Detach func()

// joinDetach combines removals into one idempotent Detach.
func joinDetach(removes ...Remove) Detach {
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, r := range removes {
				r()
			}
		})
	}
}

// Scope calls detach once ctx is done. The returned channel is closed
// after detach has run.
func Scope(ctx context.Context, detach Detach) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		detach()
	}()
	return done
}
