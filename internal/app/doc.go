// Package app wires the input sources, trackers and shortcut registry into
// a runnable application.
//
// An App owns one input.Target. The configured source (the terminal or the
// WebSocket bridge) feeds it, a KeyboardTracker and MouseTracker observe
// it, and the shortcut Registry is notified of every keyboard change:
//
//	a, err := app.New(cfg, log)
//	if err != nil {
//	    return err
//	}
//	a.Bind("ctrl+KeyQ", a.Quit)
//	return a.Run(ctx)
package app
