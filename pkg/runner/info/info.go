// Package info reports where manas reads its config and keeps its data.
package info

import (
	"context"
	"fmt"
	"os"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
)

type Info struct {
	Config  *config.Config
	Store   *state.Store
	Printer *printers.PrettyPrint
}

func (n *Info) Do(ctx context.Context) error {
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if n.Config == nil {
		return fmt.Errorf("info: no config")
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		pp.Note("%s found on env, using %s", config.EnvConfigPath, override)
	} else {
		pp.Note("%s env var not set", config.EnvConfigPath)
	}
	file := n.Config.File
	if file == "" {
		file = "none (defaults and env)"
	}
	pp.Note("config file: %s", file)
	pp.Note("local store: %s", n.Config.Path)

	if n.Config.Authenticated() {
		pp.Note("mode: signed in to %s", n.Config.Server.URL)
	} else {
		pp.Note("mode: guest (this device only)")
	}
	if n.Store != nil {
		snap := n.Store.Snapshot()
		pp.Note("thoughts: %d, sessions completed: %d, theme: %s", len(snap.Thoughts), snap.SessionsCompleted, snap.Theme)
	}
	return nil
}
