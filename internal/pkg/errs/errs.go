package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// marked keeps the sentinel in the standard unwrap chain. cockroachdb's
// withMark only exposes the mark to its own Is, so without this layer
// errors.Is (and testify's ErrorIs) would not see it.
type marked struct {
	cause error
	mark  error
}

func (e *marked) Error() string   { return e.cause.Error() }
func (e *marked) Unwrap() []error { return []error{e.cause, e.mark} }

func (e *marked) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.cause)
}

// Mark attaches markErr so that errors.Is(result, markErr) holds — for both
// the standard library and cockroachdb matchers — while the original cause
// keeps its message and stack trace.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(&marked{cause: err, mark: markErr}, markErr)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
