// Package input tracks keyboard and mouse state from low-level events.
//
// # Architecture
//
// Three pieces cooperate:
//
//   - Target: the event target sources deliver to. Listeners are added per
//     event kind and removed through the returned Remove func. Dispatch is
//     synchronous and serialized, so listeners observe one event at a time.
//   - KeyboardTracker: keeps the set of pressed codes and the modifier flags
//     of the last key-down, and notifies ChangeListeners after each change.
//   - MouseTracker: keeps the last pointer position from move events.
//
// # Lifecycle
//
// Trackers attach to a Target and return a Detach func. Tie it to the
// owning component with defer, or to a context with Scope:
//
//	target := input.NewTarget()
//	kb := input.NewKeyboardTracker()
//	kb.OnChange(registry.StateChanged)
//	input.Scope(ctx, kb.Attach(target))
//
// # Platform quirk
//
// Some platforms swallow key-up events for keys released while Meta is
// held. Releasing MetaLeft therefore clears every pressed key.
package input
