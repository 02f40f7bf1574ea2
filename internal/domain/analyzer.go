// Package domain contains the coverage checking workflow.
package domain

import (
	"github.com/mouse-blink/casecov/internal/domain/coverage"
	m "github.com/mouse-blink/casecov/internal/model"
)

// Analyzer computes the coverage report of one member.
type Analyzer interface {
	Analyze(member m.Member, cases []m.Case) m.MemberReport
}

type analyzer struct{}

// NewAnalyzer returns the coverage algebra analyzer.
func NewAnalyzer() Analyzer {
	return &analyzer{}
}

func (a *analyzer) Analyze(member m.Member, cases []m.Case) m.MemberReport {
	return coverage.Analyze(member, cases)
}
