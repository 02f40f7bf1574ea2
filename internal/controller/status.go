package controller

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

type memberStatus int

const (
	statusComplete memberStatus = iota
	statusIncomplete
	statusInvalid
)

func (s memberStatus) String() string {
	switch s {
	case statusComplete:
		return "complete"
	case statusIncomplete:
		return "incomplete"
	case statusInvalid:
		return "invalid"
	}

	return "unknown"
}

func statusOf(r m.MemberReport) memberStatus {
	for _, d := range r.Diagnostics {
		if d.Severity == m.SevError {
			return statusInvalid
		}
	}

	if _, ok := r.Missing(); ok {
		return statusIncomplete
	}

	return statusComplete
}

// detailLines renders the diagnostics of a report, one finding per line.
func detailLines(r m.MemberReport) []string {
	var lines []string

	for _, d := range r.Diagnostics {
		if d.Code == m.CodeMissingCases {
			lines = append(lines, fmt.Sprintf("%s %s: %d partition(s) not covered", d.Severity, d.Code, len(d.Missing)))
			for _, term := range d.Missing {
				lines = append(lines, "    - "+term)
			}

			continue
		}

		loc := ""
		if len(d.Locations) > 0 {
			loc = d.Locations[0].String() + " "
		}

		lines = append(lines, fmt.Sprintf("%s%s %s: %s", loc, d.Severity, d.Code, d.Message))
	}

	if len(r.ErrorCases) > 0 {
		lines = append(lines, "error cases: "+strings.Join(r.ErrorCases, ", "))
	}

	return lines
}

func countComplete(reports []m.MemberReport) int {
	n := 0

	for _, r := range reports {
		if r.Complete() {
			n++
		}
	}

	return n
}
