package controller

import (
	m "github.com/mouse-blink/casecov/internal/model"
)

// Message types.
type membersMsg struct {
	members []m.MemberSummary
}

type reportsMsg struct {
	run m.Run
}

// List item types.
type rowItem struct {
	label   string
	badge   string
	status  memberStatus
	details []string
}

func (r rowItem) FilterValue() string {
	return r.label
}
