package generate

import (
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/teranos/autogen/errors"
	"github.com/teranos/autogen/logger"
)

// CheckResult compares a fresh render with the file on disk.
type CheckResult struct {
	Output   string
	UpToDate bool
	Missing  bool   // the output file does not exist yet
	Diff     string // (-on disk +rendered); empty when up to date
}

// Err returns an ErrOutOfDate error when the output differs, nil otherwise.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	err := errors.Wrapf(errors.ErrOutOfDate, "%s", r.Output)
	return errors.WithHint(err, "run autogen generate to refresh it")
}

// Check renders opts in memory and compares the result with opts.Output.
// Nothing is written.
func (g *Generator) Check(opts Options) (*CheckResult, error) {
	text, _, err := g.render(opts)
	if err != nil {
		return nil, err
	}

	res := &CheckResult{Output: opts.Output}
	existing, err := os.ReadFile(opts.Output)
	switch {
	case os.IsNotExist(err):
		res.Missing = true
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read %s", opts.Output)
	}

	res.Diff = cmp.Diff(string(existing), text)
	res.UpToDate = !res.Missing && res.Diff == ""

	g.log.Debugw("Checked output",
		logger.FieldOutput, opts.Output,
		"up_to_date", res.UpToDate)
	return res, nil
}
