package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

const badgeWidth = 10

// rowDelegate draws one row per item: a status badge and a label.
type rowDelegate struct {
	offset int
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(rowItem)
	if !ok {
		return
	}

	width := m.Width() - badgeWidth - 2

	var labelStyle, badgeStyle lipgloss.Style

	var label string

	if index == m.Index() {
		labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		badgeStyle = labelStyle.
			Width(badgeWidth).
			Align(lipgloss.Right)

		label = animateScroll(row.label, width, d.offset)
	} else {
		labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		badgeStyle = lipgloss.NewStyle().
			Foreground(statusColor(row.status)).
			Bold(true).
			Width(badgeWidth).
			Align(lipgloss.Right)

		label = truncateToWidth(row.label, width)
	}

	_, _ = fmt.Fprintf(w, "%s  %s", badgeStyle.Render(row.badge), labelStyle.Render(label))
}

func statusColor(s memberStatus) lipgloss.Color {
	switch s {
	case statusComplete:
		return lipgloss.Color("10")
	case statusIncomplete:
		return lipgloss.Color("11")
	}

	return lipgloss.Color("9")
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const (
		gap   = "   "
		pause = 5
	)

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// browserModel lists members or reports and shows the findings of the
// selected row below the list.
type browserModel struct {
	width        int
	height       int
	title        string
	summary      string
	header       string
	rows         list.Model
	delegate     rowDelegate
	rendered     bool
	animOffset   int
	lastSelected int
	// pending is delivered by Init once the program is running.
	pending tea.Msg
}

func newBrowserModel(title, placeholder string) browserModel {
	delegate := rowDelegate{}
	rows := list.New([]list.Item{}, delegate, 80, 20)
	rows.SetShowPagination(false)
	rows.SetShowFilter(true)
	rows.SetShowHelp(false)
	rows.SetShowTitle(false)
	rows.SetShowStatusBar(false)
	rows.FilterInput.Placeholder = placeholder

	return browserModel{
		title:        title,
		rows:         rows,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (b browserModel) Init() tea.Cmd {
	tick := tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})

	if b.pending == nil {
		return tick
	}

	pending := b.pending

	return tea.Batch(tick, func() tea.Msg { return pending })
}

func (b browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.rows.SetWidth(b.width)

	case tickMsg:
		if b.rows.FilterState() != list.Filtering && b.rendered {
			b.animOffset++
			b.delegate.offset = b.animOffset
			b.rows.SetDelegate(b.delegate)

			return b, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		default:
			b.rows, cmd = b.rows.Update(msg)

			if b.rows.Index() != b.lastSelected {
				b.lastSelected = b.rows.Index()
				b.animOffset = 0
				b.delegate.offset = 0
				b.rows.SetDelegate(b.delegate)
			}

			return b, cmd
		}

	case membersMsg:
		b = b.handleMembersMsg(msg)

	case reportsMsg:
		b = b.handleReportsMsg(msg)
	}

	return b, cmd
}

func (b browserModel) handleMembersMsg(msg membersMsg) browserModel {
	cases := 0
	items := make([]list.Item, 0, len(msg.members))

	for _, member := range msg.members {
		status := statusComplete
		if member.Cases == 0 {
			status = statusIncomplete
		}

		items = append(items, rowItem{
			label:  member.Signature,
			badge:  fmt.Sprintf("%d", member.Cases),
			status: status,
			details: []string{
				fmt.Sprintf("kind: %s", member.Kind),
				fmt.Sprintf("parameters: %d", member.Parameters),
			},
		})

		cases += member.Cases
	}

	b.header = fmt.Sprintf("%*s  %s", badgeWidth, "Cases", "Member")
	b.summary = fmt.Sprintf("Members: %d   Cases: %d", len(msg.members), cases)

	return b.withItems(items)
}

func (b browserModel) handleReportsMsg(msg reportsMsg) browserModel {
	items := make([]list.Item, 0, len(msg.run.Reports))

	for _, r := range msg.run.Reports {
		status := statusOf(r)
		items = append(items, rowItem{
			label:   r.Member,
			badge:   status.String(),
			status:  status,
			details: detailLines(r),
		})
	}

	b.header = fmt.Sprintf("%*s  %s", badgeWidth, "Status", "Member")
	b.summary = fmt.Sprintf("Run: %s   Members: %d   Complete: %d",
		msg.run.ID, len(msg.run.Reports), countComplete(msg.run.Reports))

	return b.withItems(items)
}

func (b browserModel) withItems(items []list.Item) browserModel {
	b.rows.SetItems(items)
	b.rendered = true

	if len(items) > 0 && b.lastSelected == -1 {
		b.lastSelected = 0
	}

	return b
}

func (b browserModel) View() string {
	if !b.rendered {
		return "Loading…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(b.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(b.title),
		summaryStyle.Render(b.summary),
		b.renderTable(),
		b.renderDetails(),
		footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit"),
	)
}

func (b browserModel) renderTable() string {
	// title, summary, footer, border, header and details take the rest
	listHeight := b.height - 16
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := b.width - 6

	b.rows.SetHeight(listHeight)
	b.rows.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(b.header),
			b.rows.View(),
		),
	)
}

func (b browserModel) renderDetails() string {
	row, ok := b.rows.SelectedItem().(rowItem)
	if !ok || len(row.details) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 3)

	text := row.label
	for _, line := range row.details {
		if b.width > 4 {
			line = truncateToWidth(line, b.width-4)
		}

		text += "\n" + line
	}

	return style.Render(text)
}
