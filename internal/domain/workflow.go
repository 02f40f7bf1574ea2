package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/casecov/internal/adapter"
	"github.com/mouse-blink/casecov/internal/controller"
	m "github.com/mouse-blink/casecov/internal/model"
)

// ErrIncompleteCoverage is returned by Check when failing on missing cases
// was requested and at least one member is not fully covered.
var ErrIncompleteCoverage = errors.New("coverage is incomplete")

// ListArgs selects the case files to read.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// CheckArgs configures a coverage check.
type CheckArgs struct {
	ListArgs
	// Reports is the directory runs are stored in; empty disables storage.
	Reports       m.Path
	Threads       int
	FailOnMissing bool
	// Ignore silences diagnostic codes for every member.
	Ignore []string
}

// ViewArgs locates the stored run to display.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the operations exposed to the command line.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	extractor adapter.CaseExtractor
	store     adapter.ReportStore
	ui        controller.UI
	analyzer  Analyzer
	logger    *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// A nil logger falls back to slog.Default().
func NewWorkflow(
	extractor adapter.CaseExtractor,
	store adapter.ReportStore,
	ui controller.UI,
	analyzer Analyzer,
	logger *slog.Logger,
) Workflow {
	if logger == nil {
		logger = slog.Default()
	}

	return &workflow{
		extractor: extractor,
		store:     store,
		ui:        ui,
		analyzer:  analyzer,
		logger:    logger,
	}
}

// Check analyzes every declared member, stores the run and displays it.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	set, err := w.extractor.Extract(ctx, args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("extract cases: %w", err)
	}

	w.logger.Info("cases extracted",
		slog.Int("members", len(set.Members)),
		slog.Int("cases", len(set.Cases)),
	)

	reports, err := w.analyzeAll(ctx, set, args)
	if err != nil {
		return err
	}

	run := m.Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Reports:   reports,
	}

	if args.Reports != "" {
		if err := w.store.SaveRun(args.Reports, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}

		w.logger.Debug("run saved", slog.String("id", run.ID), slog.String("dir", string(args.Reports)))
	}

	if err := w.ui.DisplayReports(run); err != nil {
		return err
	}

	if args.FailOnMissing {
		for _, r := range reports {
			if !r.Complete() {
				return ErrIncompleteCoverage
			}
		}
	}

	return nil
}

// List displays the declared members with their case counts.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	set, err := w.extractor.Extract(ctx, args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("extract cases: %w", err)
	}

	counts := make(map[string]int, len(set.Members))
	for _, c := range set.Cases {
		counts[c.Member]++
	}

	summaries := make([]m.MemberSummary, 0, len(set.Members))
	for _, member := range set.Members {
		summaries = append(summaries, m.MemberSummary{
			Signature:  member.Signature,
			Kind:       member.Kind,
			Parameters: len(member.Parameters),
			Cases:      counts[member.Signature],
		})
	}

	return w.ui.DisplayMembers(summaries)
}

// View displays the most recent stored run.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	run, err := w.store.LoadLatest(args.Reports)
	if err != nil {
		return fmt.Errorf("load latest run from %s: %w", args.Reports, err)
	}

	return w.ui.DisplayReports(run)
}

func (w *workflow) analyzeAll(ctx context.Context, set m.CaseSet, args CheckArgs) ([]m.MemberReport, error) {
	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	byMember := make(map[string][]m.Case, len(set.Members))
	for _, c := range set.Cases {
		byMember[c.Member] = append(byMember[c.Member], c)
	}

	reports := make([]m.MemberReport, len(set.Members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, member := range set.Members {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report := w.analyzer.Analyze(member, byMember[member.Signature])
			reports[i] = parseIgnoreRule(args.Ignore, member.Ignore).apply(report)

			w.logger.Debug("member analyzed",
				slog.String("member", member.Signature),
				slog.Int("cases", len(byMember[member.Signature])),
				slog.Int("diagnostics", len(report.Diagnostics)),
				slog.Int("silenced", len(report.Diagnostics)-len(reports[i].Diagnostics)),
			)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	global := parseIgnoreRule(args.Ignore)
	for _, r := range unknownMembers(set) {
		reports = append(reports, global.apply(r))
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Member < reports[j].Member
	})

	return reports, nil
}

// unknownMembers reports cases naming a member nobody declared.
func unknownMembers(set m.CaseSet) []m.MemberReport {
	declared := make(map[string]bool, len(set.Members))
	for _, member := range set.Members {
		declared[member.Signature] = true
	}

	byName := make(map[string]*m.MemberReport)

	var names []string

	for _, c := range set.Cases {
		if declared[c.Member] {
			continue
		}

		r, ok := byName[c.Member]
		if !ok {
			r = &m.MemberReport{Member: c.Member}
			byName[c.Member] = r
			names = append(names, c.Member)
		}

		r.Cases++
		r.Diagnostics = append(r.Diagnostics, m.Diagnostic{
			Code:      m.CodeUnknownMember,
			Severity:  m.SevError,
			Member:    c.Member,
			Message:   fmt.Sprintf("case %q targets undeclared member %q", c.Name, c.Member),
			Locations: []m.Location{c.Location()},
		})
	}

	reports := make([]m.MemberReport, 0, len(names))
	for _, name := range names {
		r := byName[name]
		sort.SliceStable(r.Diagnostics, func(i, j int) bool {
			return r.Diagnostics[i].Locations[0].Less(r.Diagnostics[j].Locations[0])
		})
		reports = append(reports, *r)
	}

	return reports
}
