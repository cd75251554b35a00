package aggregator

import (
	stderrors "errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// DefaultTopSubjects caps the most-affected-subjects list.
const DefaultTopSubjects = 10

// parseLimit bounds concurrent report parsing.
const parseLimit = 4

// SubjectCount is one entry of the most-affected-subjects ranking.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// Warning records a report file that contributed nothing: either the path
// does not exist or the content could not be parsed. Warnings never abort
// the run.
type Warning struct {
	Tool   findings.Tool `json:"tool"`
	File   string        `json:"file"`
	Reason string        `json:"reason"`
}

// Report is the merged, normalized view over every raw report of a scan
// run. Renderers consume it without re-parsing anything.
type Report struct {
	// ReportID is stable for a given input set, so reruns over unchanged
	// reports produce identical output.
	ReportID string

	// Findings holds every normalized finding in processing order: canonical
	// tool order, then sorted path order within a tool, then file order.
	Findings []findings.Finding

	// CountsBySeverity always carries all six severity keys, zero-filled.
	CountsBySeverity map[findings.Severity]int

	// CountsByTool carries a zero-filled severity map for every analyzed
	// tool, findings or not.
	CountsByTool map[findings.Tool]map[findings.Severity]int

	// TopSubjects ranks subjects by finding count, descending, ties broken
	// by first appearance.
	TopSubjects []SubjectCount

	// ToolsAnalyzed lists, in canonical order, every tool with at least one
	// successfully parsed report. A report with zero findings still counts.
	ToolsAnalyzed []findings.Tool

	// ParsedInputs lists every input that parsed successfully, including
	// empty ones, in processing order. The per-tool report trees emit one
	// file per entry.
	ParsedInputs []adapters.Input

	// Warnings lists the inputs that contributed nothing, in processing
	// order.
	Warnings []Warning
}

type parseResult struct {
	input adapters.Input
	list  []findings.Finding
	err   error
}

// Aggregate parses every input and merges the results into one Report.
// Parsing fans out onto a bounded errgroup; each goroutine owns its result
// slot, and merging starts only after the join, so output never depends on
// scheduling. A failed input becomes a Warning and costs nothing else.
func Aggregate(logger hclog.Logger, inputs []adapters.Input, topN int) *Report {
	results := make([]parseResult, len(inputs))

	var group errgroup.Group
	group.SetLimit(parseLimit)
	for i, input := range inputs {
		i, input := i, input
		group.Go(func() error {
			list, err := adapters.ParseFile(input.Tool, input.Path)
			results[i] = parseResult{input: input, list: list, err: err}
			return nil
		})
	}
	// Workers stash failures in their slot instead of failing the group, so
	// one malformed report can never cancel its siblings.
	_ = group.Wait()

	report := &Report{
		ReportID:         reportID(inputs),
		CountsBySeverity: zeroSeverityCounts(),
		CountsByTool:     make(map[findings.Tool]map[findings.Severity]int),
	}

	analyzed := make(map[findings.Tool]bool)
	for _, res := range results {
		if res.err != nil {
			warning := warningFor(res.input, res.err)
			report.Warnings = append(report.Warnings, warning)
			logger.Warn("skipping report", "tool", res.input.Tool, "path", res.input.Path, "reason", warning.Reason)
			continue
		}
		analyzed[res.input.Tool] = true
		report.ParsedInputs = append(report.ParsedInputs, res.input)
		report.Findings = append(report.Findings, res.list...)
	}

	for _, tool := range findings.AllTools {
		if analyzed[tool] {
			report.ToolsAnalyzed = append(report.ToolsAnalyzed, tool)
			report.CountsByTool[tool] = zeroSeverityCounts()
		}
	}

	for _, finding := range report.Findings {
		report.CountsBySeverity[finding.Severity]++
		byTool := report.CountsByTool[finding.Tool]
		if byTool == nil {
			byTool = zeroSeverityCounts()
			report.CountsByTool[finding.Tool] = byTool
		}
		byTool[finding.Severity]++
	}

	report.TopSubjects = topSubjects(report.Findings, topN)

	logger.Info("aggregation complete",
		"inputs", len(inputs),
		"findings", len(report.Findings),
		"tools", len(report.ToolsAnalyzed),
		"warnings", len(report.Warnings))

	return report
}

// zeroSeverityCounts returns a counts map with every severity key present.
func zeroSeverityCounts() map[findings.Severity]int {
	counts := make(map[findings.Severity]int, len(findings.AllSeverities))
	for _, severity := range findings.AllSeverities {
		counts[severity] = 0
	}
	return counts
}

func warningFor(input adapters.Input, err error) Warning {
	reason := err.Error()

	var missingErr *errors.MissingReportError
	var parseErr *errors.ParseError
	switch {
	case stderrors.As(err, &missingErr):
		reason = "report file does not exist"
	case stderrors.As(err, &parseErr):
		reason = parseErr.Err.Error()
	}

	return Warning{Tool: input.Tool, File: input.Path, Reason: reason}
}

// topSubjects ranks subjects by exact string match. Ordering is total
// (count descending, then first appearance), so the result is deterministic
// regardless of map iteration.
func topSubjects(list []findings.Finding, limit int) []SubjectCount {
	if limit <= 0 {
		limit = DefaultTopSubjects
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, finding := range list {
		if _, ok := counts[finding.Subject]; !ok {
			firstSeen[finding.Subject] = i
		}
		counts[finding.Subject]++
	}

	subjects := make([]SubjectCount, 0, len(counts))
	for subject, count := range counts {
		subjects = append(subjects, SubjectCount{Subject: subject, Count: count})
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Count != subjects[j].Count {
			return subjects[i].Count > subjects[j].Count
		}
		return firstSeen[subjects[i].Subject] < firstSeen[subjects[j].Subject]
	})

	if len(subjects) > limit {
		subjects = subjects[:limit]
	}
	return subjects
}

// reportID derives a stable UUID from the input report set. Input order
// does not matter; the set does.
func reportID(inputs []adapters.Input) string {
	paths := make([]string, 0, len(inputs))
	for _, input := range inputs {
		paths = append(paths, input.Path)
	}
	sort.Strings(paths)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(paths, "\n"))).String()
}
