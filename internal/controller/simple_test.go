package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/casecov/internal/model"
)

func sampleRun() m.Run {
	return m.Run{
		ID:        "run-1",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Reports: []m.MemberReport{
			{Member: "Calc.Add(int, int)", Cases: 3},
			{
				Member: "Calc.Div(int, int)",
				Cases:  2,
				Diagnostics: []m.Diagnostic{{
					Code:     m.CodeMissingCases,
					Severity: m.SevWarning,
					Member:   "Calc.Div(int, int)",
					Message:  "j:int.Value(0) and i:int.Below(0)",
					Missing:  []string{"j:int.Value(0)", "i:int.Below(0)"},
				}},
				ErrorCases: []string{"j:int.Value(0).ErrorCase()"},
			},
			{
				Member: "Calc.Neg(int)",
				Cases:  1,
				Diagnostics: []m.Diagnostic{{
					Code:      m.CodeWrongParameterName,
					Severity:  m.SevError,
					Member:    "Calc.Neg(int)",
					Message:   "parameter k does not exist",
					Locations: []m.Location{{File: "calc.cases.yaml", Line: 9, Column: 5}},
				}},
			},
		},
	}
}

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayMembers_PrintsTable(t *testing.T) {
	ui, buf := newBufferedUI()

	members := []m.MemberSummary{
		{Signature: "Calc.Add(int, int)", Kind: m.MemberMethod, Parameters: 2, Cases: 3},
		{Signature: "Calc.Total", Kind: m.MemberGetter, Parameters: 0, Cases: 1},
	}

	if err := ui.DisplayMembers(members); err != nil {
		t.Fatalf("DisplayMembers() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"MEMBER",
		"Calc.Add(int, int)",
		"Calc.Total",
		"getter",
		"TOTAL MEMBERS 2",
		"4",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayReports_PrintsFindings(t *testing.T) {
	ui, buf := newBufferedUI()

	if err := ui.DisplayReports(sampleRun()); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"Run run-1 (2024-03-01T10:00:00Z)",
		"complete",
		"incomplete",
		"invalid",
		"TOTAL MEMBERS 3",
		"1 COMPLETE",
		"warning MissingCases: 2 partition(s) not covered",
		"    - j:int.Value(0)",
		"    - i:int.Below(0)",
		"error cases: j:int.Value(0).ErrorCase()",
		"calc.cases.yaml:9:5 error WrongParameterName: parameter k does not exist",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}

	if strings.Contains(output, "\x1b[") {
		t.Fatalf("output contains color codes off a terminal\noutput:\n%s", output)
	}
}

func TestStatusOf(t *testing.T) {
	run := sampleRun()

	want := []memberStatus{statusComplete, statusIncomplete, statusInvalid}
	for i, r := range run.Reports {
		if got := statusOf(r); got != want[i] {
			t.Errorf("statusOf(%s) = %v, want %v", r.Member, got, want[i])
		}
	}

	if got := memberStatus(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
