package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is the per-window view of the backend.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by every window.
type Bundle struct {
	Datasource *Datasource
	Replayer   *Replayer
}

func NewBundle(mutator *stream.Mutator) Bundle {
	return Bundle{
		Datasource: NewDatasource(mutator),
		Replayer:   NewReplayer(mutator),
	}
}
