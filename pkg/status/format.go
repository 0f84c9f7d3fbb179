package status

import (
	"fmt"
	"strings"
)

// FormatUpdated is the line printed for a rewritten file
func FormatUpdated(path string) string {
	return fmt.Sprintf("Updating %s", path)
}

// FormatWouldUpdate is the line printed for a file preview mode would rewrite
func FormatWouldUpdate(path string) string {
	return fmt.Sprintf("Would update %s", path)
}

// FormatFailed is the line printed for a file that could not be processed.
// Read and write failures share the same shape.
func FormatFailed(path string, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf("Error processing %s: %s", path, msg)
}

// FormatResult returns the console lines for a result, or nil if it prints nothing
func FormatResult(r FileResult) []string {
	switch r.Status {
	case StatusUpdated:
		return []string{FormatUpdated(r.Path)}
	case StatusWouldUpdate:
		lines := []string{FormatWouldUpdate(r.Path)}
		if r.Diff != "" {
			lines = append(lines, strings.TrimSuffix(r.Diff, "\n"))
		}
		return lines
	case StatusFailed:
		var cause error
		if r.Err != nil {
			cause = r.Err.Err
		}
		return []string{FormatFailed(r.Path, cause)}
	default:
		return nil
	}
}

// FormatCounts formats the totals of a summary on one line
func FormatCounts(s *Summary) string {
	return fmt.Sprintf("%d updated, %d would update, %d unchanged, %d failed (%d replacements)",
		s.Count(StatusUpdated),
		s.Count(StatusWouldUpdate),
		s.Count(StatusUnchanged),
		s.Count(StatusFailed),
		s.Replacements(),
	)
}
