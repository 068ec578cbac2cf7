// Package cleanup purges dealt-with and long-deleted thoughts on the server.
package cleanup

import (
	"context"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
)

type Source interface {
	Cleanup(ctx context.Context) (api.CleanupResult, error)
	GlobalCleanup(ctx context.Context, key string) (api.CleanupResult, error)
}

// Cleanup sweeps the caller's thoughts, or every user's when All is set.
type Cleanup struct {
	Source  Source
	All     bool
	Key     string
	Printer *printers.PrettyPrint
	JSON    bool
}

func (c *Cleanup) Do(ctx context.Context) error {
	var res api.CleanupResult
	var err error
	if c.All {
		res, err = c.Source.GlobalCleanup(ctx, c.Key)
	} else {
		res, err = c.Source.Cleanup(ctx)
	}
	if err != nil {
		return err
	}
	pp := c.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if c.JSON {
		return printers.JSON(pp.Out, res)
	}
	pp.Note("%s", res.Message)
	return nil
}
