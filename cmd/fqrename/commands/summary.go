package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/fqrename/pkg/log"
	"github.com/walteh/fqrename/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📊 RenderSummary renders every file that was touched, previewed or failed
// as a table. Unchanged files are left out. Returns "" when there is nothing to show.
func RenderSummary(s *status.Summary) (string, error) {
	data := pterm.TableData{{"File", "Status", "Replacements"}}
	for _, r := range s.Results {
		if r.Status == status.StatusUnchanged {
			continue
		}
		data = append(data, []string{r.Path, r.Status.String(), strconv.Itoa(r.Replacements)})
	}
	if len(data) == 1 {
		return "", nil
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary table: %w", err)
	}
	return out, nil
}

func printSummary(ctx context.Context, s *status.Summary, out io.Writer) error {
	console := log.FromContext(ctx)

	table, err := RenderSummary(s)
	if err != nil {
		return err
	}
	if table != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, table)
		fmt.Fprintln(out)
	}

	if n := len(s.Failures()); n > 0 {
		console.Warningf("%d of %d files could not be processed", n, s.Visited())
	}
	console.Summary(s)
	return nil
}
