// Package controller provides output adapters for displaying coverage results.
package controller

import (
	m "github.com/mouse-blink/casecov/internal/model"
)

// UI defines the interface for presenting members and coverage reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayMembers(members []m.MemberSummary) error
	DisplayReports(run m.Run) error
}
