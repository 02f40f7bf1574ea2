package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/casecov/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd    *cobra.Command
	colors bool
}

// NewSimpleUI creates a new SimpleUI. Colors are only emitted on terminals.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, colors: IsTTY(cmd.OutOrStdout())}
}

// DisplayMembers prints the declared members with their case counts.
func (s *SimpleUI) DisplayMembers(members []m.MemberSummary) error {
	var tableBuffer bytes.Buffer

	table := s.newTable(&tableBuffer)
	table.SetHeader([]string{"Member", "Kind", "Parameters", "Cases"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	cases := 0

	for _, member := range members {
		table.Append([]string{
			member.Signature,
			string(member.Kind),
			fmt.Sprintf("%d", member.Parameters),
			fmt.Sprintf("%d", member.Cases),
		})

		cases += member.Cases
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Members %d", len(members)),
		"",
		"",
		fmt.Sprintf("%d", cases),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReports prints a summary table followed by the findings of every
// member that is not fully covered.
func (s *SimpleUI) DisplayReports(run m.Run) error {
	s.printf("Run %s (%s)\n", run.ID, run.CreatedAt.Format(time.RFC3339))

	var tableBuffer bytes.Buffer

	table := s.newTable(&tableBuffer)
	table.SetHeader([]string{"Member", "Cases", "Status"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	cases := 0

	for _, r := range run.Reports {
		status := statusOf(r)
		table.Append([]string{r.Member, fmt.Sprintf("%d", r.Cases), s.paint(status, status.String())})

		cases += r.Cases
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Members %d", len(run.Reports)),
		fmt.Sprintf("%d", cases),
		fmt.Sprintf("%d complete", countComplete(run.Reports)),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	for _, r := range run.Reports {
		if r.Complete() {
			continue
		}

		s.printf("\n%s\n", s.paint(statusOf(r), r.Member))

		for _, line := range detailLines(r) {
			s.printf("  %s\n", line)
		}
	}

	return nil
}

func (s *SimpleUI) newTable(buf *bytes.Buffer) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func (s *SimpleUI) paint(status memberStatus, text string) string {
	var c *color.Color

	switch status {
	case statusComplete:
		c = color.New(color.FgGreen)
	case statusIncomplete:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgRed, color.Bold)
	}

	if s.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
