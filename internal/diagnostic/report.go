package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity orders findings; only SeverityError fails a validation.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// Diagnostic is one finding. Type and Member locate it in the manifest and
// may be empty. A Diagnostic is an error so that Report.Err can return the
// findings themselves.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Type     string
	Member   string
}

// Location returns "Type.Member", or whichever part is set.
func (d Diagnostic) Location() string {
	switch {
	case d.Type == "":
		return d.Member
	case d.Member == "":
		return d.Type
	}

	return d.Type + "." + d.Member
}

// Error formats d as "shop.Order.Lines: message [code]".
func (d Diagnostic) Error() string {
	msg := d.Message
	if d.Code != "" {
		msg += " [" + d.Code + "]"
	}

	if loc := d.Location(); loc != "" {
		return loc + ": " + msg
	}

	return msg
}

// Report accumulates findings in the order they were found. The zero value
// is an empty report.
type Report struct {
	list []Diagnostic
}

// Errorf records an error.
func (r *Report) Errorf(code, typ, member, format string, args ...any) {
	r.add(SeverityError, code, typ, member, fmt.Sprintf(format, args...))
}

// Warnf records a warning.
func (r *Report) Warnf(code, typ, member, format string, args ...any) {
	r.add(SeverityWarning, code, typ, member, fmt.Sprintf(format, args...))
}

// Infof records an informational note.
func (r *Report) Infof(code, typ, member, format string, args ...any) {
	r.add(SeverityInfo, code, typ, member, fmt.Sprintf(format, args...))
}

func (r *Report) add(s Severity, code, typ, member, msg string) {
	r.list = append(r.list, Diagnostic{
		Severity: s,
		Code:     code,
		Message:  msg,
		Type:     typ,
		Member:   member,
	})
}

// Len returns the number of findings.
func (r *Report) Len() int {
	return len(r.list)
}

// Count returns the number of findings of severity s.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, d := range r.list {
		if d.Severity == s {
			n++
		}
	}

	return n
}

// Select returns the findings of severity s in report order.
func (r *Report) Select(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.list {
		if d.Severity == s {
			out = append(out, d)
		}
	}

	return out
}

// Sorted returns every finding, most severe first.
func (r *Report) Sorted() []Diagnostic {
	out := slices.Clone(r.list)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return cmp.Compare(b.Severity, a.Severity)
	})

	return out
}

// Err joins the errors of r, or returns nil when there are none. Each
// joined error is a Diagnostic.
func (r *Report) Err() error {
	var errs []error
	for _, d := range r.list {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}

	return errors.Join(errs...)
}
