// Package mouse defines pointer positions and mouse events.
//
// Sources produce Event values and deliver them through an input.Target.
// Button presses and releases carry the Button involved. The input
// package's MouseTracker records the latest position from move events
// only:
//
//	ev := mouse.NewMove(120, 48)
//	target.DispatchMouse(ev)
//	tracker.Position() // (120, 48)
package mouse
