package domain

import (
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

// ignoreAll silences every diagnostic.
const ignoreAll = "all"

type ignoreRule struct {
	all   bool
	codes map[string]struct{}
}

func (r ignoreRule) ignores(code m.Code) bool {
	if r.all {
		return true
	}

	if len(r.codes) == 0 {
		return false
	}

	_, ok := r.codes[strings.ToLower(string(code))]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.codes = nil

		return
	}

	if dst.all || len(src.codes) == 0 {
		return
	}

	if dst.codes == nil {
		dst.codes = make(map[string]struct{}, len(src.codes))
	}

	for code := range src.codes {
		dst.codes[code] = struct{}{}
	}
}

// parseIgnoreRule reads entries such as "all" or "MissingCases, NotAConstant".
// Codes match case-insensitively.
func parseIgnoreRule(entries ...[]string) ignoreRule {
	var rule ignoreRule

	for _, list := range entries {
		for _, entry := range list {
			for _, part := range strings.Split(entry, ",") {
				name := strings.ToLower(strings.TrimSpace(part))

				switch name {
				case "":
					continue
				case ignoreAll:
					mergeIgnoreRule(&rule, ignoreRule{all: true})
				default:
					mergeIgnoreRule(&rule, ignoreRule{codes: map[string]struct{}{name: {}}})
				}
			}
		}
	}

	return rule
}

// apply drops the silenced diagnostics from a report.
func (r ignoreRule) apply(report m.MemberReport) m.MemberReport {
	if !r.all && len(r.codes) == 0 {
		return report
	}

	var kept []m.Diagnostic

	for _, d := range report.Diagnostics {
		if !r.ignores(d.Code) {
			kept = append(kept, d)
		}
	}

	report.Diagnostics = kept

	return report
}
