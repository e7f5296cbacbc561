// Package bulk imports accounts from pasted text.
package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/importer"
	"tableflip.dev/roster/pkg/printers"
	"tableflip.dev/roster/pkg/roster"
)

type Import struct {
	Roster  *roster.Roster
	Input   io.Reader
	Options importer.Options
	// DryRun prints what would be added without saving.
	DryRun bool
	// JSON prints a Summary instead of text.
	JSON bool
}

// Summary is the JSON form of an import. Accounts are redacted and skipped
// lines carry no text, since pasted lines hold passwords.
type Summary struct {
	Imported int                `json:"imported"`
	DryRun   bool               `json:"dryRun"`
	Accounts []*account.Account `json:"accounts"`
	Skipped  []SkippedLine      `json:"skipped"`
}

type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func summarize(res importer.Result, imported int, dryRun bool) Summary {
	sum := Summary{
		Imported: imported,
		DryRun:   dryRun,
		Accounts: make([]*account.Account, 0, len(res.Accounts)),
		Skipped:  make([]SkippedLine, 0, len(res.Skipped)),
	}
	for _, a := range res.Accounts {
		sum.Accounts = append(sum.Accounts, a.Redacted())
	}
	for _, sk := range res.Skipped {
		sum.Skipped = append(sum.Skipped, SkippedLine{Line: sk.Line, Reason: sk.Reason})
	}
	return sum
}

func (n *Import) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not import, no roster")
	}
	if n.Input == nil {
		return errors.New("can not import, no input")
	}
	b, err := io.ReadAll(n.Input)
	if err != nil {
		return err
	}

	res := importer.Parse(string(b), n.Options)
	if !n.JSON {
		faint := color.New(color.Faint)
		for _, s := range res.Skipped {
			_, _ = faint.Fprintf(color.Output, "skipped line %d: %s\n", s.Line, s.Reason)
		}
	}
	if err := res.Err(); err != nil {
		return err
	}

	if n.JSON {
		added := 0
		if !n.DryRun {
			if added, err = n.Roster.BulkAdd(ctx, res.Accounts); err != nil {
				return err
			}
		}
		return printJSON(summarize(res, added, n.DryRun))
	}

	pp := printers.PrettyPrint{Now: n.Roster.Now()}
	if n.DryRun {
		pp.NewLine()
		pp.TitleWithCount("Would import", len(res.Accounts))
		pp.Roster(res.Accounts...)
		return nil
	}

	added, err := n.Roster.BulkAdd(ctx, res.Accounts)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Imported %d account(s).\n", added)
	return nil
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
