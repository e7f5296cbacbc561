// Package key prints the status legend.
package key

import (
	"context"

	"tableflip.dev/roster/pkg/printers"
)

// Key prints a glyph legend describing each account status.
type Key struct{}

// Do renders the legend to color.Output.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Legend()
	pp.NewLine()
	return nil
}
