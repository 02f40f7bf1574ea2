package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/casecov/internal/model"
)

func TestParseIgnoreRule(t *testing.T) {
	tests := []struct {
		name    string
		entries [][]string
		ignored []m.Code
		kept    []m.Code
	}{
		{
			name:    "empty",
			entries: nil,
			kept:    []m.Code{m.CodeMissingCases},
		},
		{
			name:    "all",
			entries: [][]string{{"all"}},
			ignored: []m.Code{m.CodeMissingCases, m.CodeNotAConstant},
		},
		{
			name:    "comma separated codes match case-insensitively",
			entries: [][]string{{"missingcases, NotAConstant"}},
			ignored: []m.Code{m.CodeMissingCases, m.CodeNotAConstant},
			kept:    []m.Code{m.CodeWrongParameterName},
		},
		{
			name:    "lists are merged",
			entries: [][]string{{"MissingCases"}, {"WrongParameterType", ""}},
			ignored: []m.Code{m.CodeMissingCases, m.CodeWrongParameterType},
			kept:    []m.Code{m.CodeNotADateCreation},
		},
		{
			name:    "all wins over codes",
			entries: [][]string{{"MissingCases"}, {"ALL"}},
			ignored: []m.Code{m.CodeUnknownMember},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := parseIgnoreRule(tt.entries...)

			for _, code := range tt.ignored {
				assert.True(t, rule.ignores(code), "expected %s to be ignored", code)
			}

			for _, code := range tt.kept {
				assert.False(t, rule.ignores(code), "expected %s to be kept", code)
			}
		})
	}
}

func TestMergeIgnoreRule(t *testing.T) {
	dst := ignoreRule{all: true}
	mergeIgnoreRule(&dst, ignoreRule{codes: map[string]struct{}{"missingcases": {}}})
	assert.True(t, dst.all)
	assert.Nil(t, dst.codes)

	var empty ignoreRule
	mergeIgnoreRule(&empty, ignoreRule{})
	assert.Nil(t, empty.codes)
}

func TestIgnoreRule_Apply(t *testing.T) {
	report := m.MemberReport{
		Member: "A.Run(int)",
		Diagnostics: []m.Diagnostic{
			{Code: m.CodeMissingCases},
			{Code: m.CodeNotAConstant},
		},
	}

	filtered := parseIgnoreRule([]string{"MissingCases"}).apply(report)
	assert.Equal(t, []m.Diagnostic{{Code: m.CodeNotAConstant}}, filtered.Diagnostics)
	assert.Len(t, report.Diagnostics, 2)

	assert.True(t, parseIgnoreRule([]string{"all"}).apply(report).Complete())
	assert.Equal(t, report, parseIgnoreRule().apply(report))
}
