package commands

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pterm/pterm"
	"github.com/teranos/autogen/errors"
)

// PrintError writes err and every user hint attached to it. Hints of
// aggregated validation errors are collected from each member.
func PrintError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
	for _, hint := range hints(err) {
		pterm.Info.WithWriter(w).Println(hint)
	}
}

func hints(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return errors.GetAllHints(err)
	}

	var out []string
	seen := map[string]bool{}
	for _, e := range merr.Errors {
		for _, h := range errors.GetAllHints(e) {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	return out
}
