package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xxxsen/deltamd/internal/delta"
	"github.com/xxxsen/deltamd/internal/render"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// Write prints failed operations and parser warnings, one per line.
func Write(w io.Writer, res *render.Result, warnings []delta.Warning) error {
	failures := res.Failures()
	total := 0
	if res != nil {
		total = len(res.Ops)
	}
	if len(failures) == 0 && len(warnings) == 0 {
		_, err := okColor.Fprintf(w, "ok: %d operations converted\n", total)
		return err
	}
	for _, f := range failures {
		if _, err := failColor.Fprintf(w, "fail"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " op #%d [%s]: %v\n", f.Index, f.Rule, f.Err); err != nil {
			return err
		}
	}
	for _, wr := range warnings {
		if _, err := warnColor.Fprintf(w, "warn"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " op #%d attribute %q: %s\n", wr.Index, wr.Key, wr.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d operations failed, %d warnings\n", len(failures), total, len(warnings))
	return err
}
