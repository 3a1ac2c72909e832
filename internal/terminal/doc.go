// Package terminal feeds terminal keyboard and mouse input into an
// input.Target using tcell.
//
// Terminals report key presses, not releases, so every press is
// delivered as a key-down immediately followed by a key-up. Key names
// are translated to DOM codes so shortcuts registered for a browser
// front-end also match here:
//
//	screen, err := terminal.Open()
//	if err != nil {
//	    return err
//	}
//	src := terminal.New(screen, target, terminal.WithLogger(log))
//	err = src.Run(ctx)
package terminal
