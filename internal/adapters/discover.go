package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/scan-io-git/reportio/internal/findings"
)

// Input pairs a raw report path with the tool that produced it.
type Input struct {
	Tool findings.Tool
	Path string
}

// reportPatterns holds the file naming conventions the pipeline stages use
// when dropping raw reports into the results tree.
var reportPatterns = map[findings.Tool][]string{
	findings.ToolGrype:      {"grype-*-results.json"},
	findings.ToolTrivy:      {"trivy-*-results.json"},
	findings.ToolTruffleHog: {"trufflehog-*-results.json"},
	findings.ToolCheckov:    {"checkov-results*.json"},
	findings.ToolClamAV:     {"clamav-detailed.log"},
	findings.ToolXeol:       {"xeol-*-results.json"},
	findings.ToolSonarQube:  {"sonar-analysis-results.json"},
}

// Discover walks root and collects every file matching a known report
// naming convention. Results come back grouped in canonical tool order,
// paths sorted within each tool, so repeated runs see the same sequence.
func Discover(root string) ([]Input, error) {
	buckets := make(map[findings.Tool][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if tool, ok := matchReportName(d.Name()); ok {
			buckets[tool] = append(buckets[tool], path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var inputs []Input
	for _, tool := range findings.AllTools {
		paths := buckets[tool]
		sort.Strings(paths)
		for _, path := range paths {
			inputs = append(inputs, Input{Tool: tool, Path: path})
		}
	}
	return inputs, nil
}

func matchReportName(name string) (findings.Tool, bool) {
	for _, tool := range findings.AllTools {
		for _, pattern := range reportPatterns[tool] {
			if ok, _ := filepath.Match(pattern, name); ok {
				return tool, true
			}
		}
	}
	return "", false
}
