package adapters

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// ParseFunc parses one raw scanner report into normalized findings.
// Implementations never panic: a missing file comes back as a
// MissingReportError and a malformed one as a ParseError, both with zero
// findings, so one bad report can never abort its siblings.
type ParseFunc func(path string) ([]findings.Finding, error)

var parsers = map[findings.Tool]ParseFunc{
	findings.ToolGrype:      ParseGrypeFile,
	findings.ToolTrivy:      ParseTrivyFile,
	findings.ToolTruffleHog: ParseTruffleHogFile,
	findings.ToolCheckov:    ParseCheckovFile,
	findings.ToolClamAV:     ParseClamAVFile,
	findings.ToolXeol:       ParseXeolFile,
	findings.ToolSonarQube:  ParseSonarQubeFile,
}

// ParseFile dispatches a raw report to the adapter registered for the tool.
func ParseFile(tool findings.Tool, path string) ([]findings.Finding, error) {
	parse, ok := parsers[tool]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for tool %q", tool)
	}
	return parse(path)
}

// ResolveTool maps a case-insensitive tool name to its canonical Tool value.
func ResolveTool(name string) (findings.Tool, bool) {
	for _, tool := range findings.AllTools {
		if strings.EqualFold(string(tool), name) {
			return tool, true
		}
	}
	return "", false
}

// readReport loads the raw report bytes, classifying the two failure modes
// the aggregation treats as warnings.
func readReport(tool findings.Tool, path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewMissingReportError(string(tool), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewParseError(string(tool), path, err)
	}
	return data, nil
}

// deduplicate drops exact repeats within a single raw report, keeping the
// first occurrence. Findings that differ in any of identifier, subject,
// description or the verified flag stay separate, so two secrets from the
// same detector in the same file survive.
func deduplicate(list []findings.Finding) []findings.Finding {
	seen := make(map[string]struct{}, len(list))
	deduplicated := make([]findings.Finding, 0, len(list))

	for _, finding := range list {
		verified := ""
		if finding.Verified != nil {
			verified = strconv.FormatBool(*finding.Verified)
		}
		uniqueKey := fmt.Sprintf("%s:%s:%s:%s", finding.ID, finding.Subject, finding.Description, verified)
		if _, exists := seen[uniqueKey]; !exists {
			seen[uniqueKey] = struct{}{}
			deduplicated = append(deduplicated, finding)
		}
	}

	return deduplicated
}

// orUnknown substitutes the placeholder identifier for empty native ids.
func orUnknown(id string) string {
	if strings.TrimSpace(id) == "" {
		return "Unknown"
	}
	return id
}

// subjectAtVersion formats the package-at-version subject shared by the
// vulnerability scanners, e.g. "tiff @ 4.7.1-r0".
func subjectAtVersion(name, version string) string {
	return fmt.Sprintf("%s @ %s", name, version)
}
