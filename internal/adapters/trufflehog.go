package adapters

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// trufflehogEntry is one TruffleHog detection. The scanner interleaves log
// objects with real findings in the same stream; an entry only qualifies as
// a secret when it carries a detector name and source metadata.
type trufflehogEntry struct {
	DetectorName        string              `json:"DetectorName"`
	DetectorDescription string              `json:"DetectorDescription"`
	Verified            bool                `json:"Verified"`
	Raw                 string              `json:"Raw"`
	Redacted            string              `json:"Redacted"`
	SourceMetadata      *trufflehogMetadata `json:"SourceMetadata"`
}

type trufflehogMetadata struct {
	Data trufflehogMetadataData `json:"Data"`
}

type trufflehogMetadataData struct {
	Filesystem *trufflehogFileSource   `json:"Filesystem"`
	Git        *trufflehogGitSource    `json:"Git"`
	Docker     *trufflehogDockerSource `json:"Docker"`
}

type trufflehogFileSource struct {
	File string `json:"file"`
}

type trufflehogGitSource struct {
	File       string `json:"file"`
	Repository string `json:"repository"`
}

type trufflehogDockerSource struct {
	File  string `json:"file"`
	Image string `json:"image"`
}

// ParseTruffleHogFile accepts both report layouts TruffleHog produces: a
// JSON array of objects or newline-delimited objects. Secrets always
// normalize to High, verified or not.
func ParseTruffleHogFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolTruffleHog, path)
	if err != nil {
		return nil, err
	}
	return parseTruffleHogBytes(path, data)
}

func parseTruffleHogBytes(path string, data []byte) ([]findings.Finding, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []findings.Finding{}, nil
	}

	var entries []trufflehogEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		return deduplicate(trufflehogFindings(path, entries)), nil
	}

	var single trufflehogEntry
	if err := json.Unmarshal(data, &single); err == nil {
		return deduplicate(trufflehogFindings(path, []trufflehogEntry{single})), nil
	}

	// JSONL fallback: decode line by line, counting how many lines held any
	// valid JSON at all so a file of pure garbage still raises a warning.
	var decoded int
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry trufflehogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		decoded++
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParseError(string(findings.ToolTruffleHog), path, err)
	}
	if decoded == 0 {
		return nil, errors.NewParseError(string(findings.ToolTruffleHog), path,
			fmt.Errorf("no JSON objects found in report"))
	}

	return deduplicate(trufflehogFindings(path, entries)), nil
}

func trufflehogFindings(path string, entries []trufflehogEntry) []findings.Finding {
	result := make([]findings.Finding, 0, len(entries))
	for _, entry := range entries {
		if entry.DetectorName == "" || entry.SourceMetadata == nil {
			continue
		}

		verified := entry.Verified
		description := entry.DetectorDescription
		if description == "" {
			description = entry.Redacted
		}

		result = append(result, findings.Finding{
			Tool:         findings.ToolTruffleHog,
			Severity:     findings.Normalize(findings.ToolTruffleHog, ""),
			ID:           orUnknown(entry.DetectorName),
			Subject:      trufflehogSubject(entry.SourceMetadata),
			Description:  description,
			SourceReport: path,
			Verified:     &verified,
		})
	}
	return result
}

// trufflehogSubject pulls the affected file or image out of the source
// metadata, first branch that has one.
func trufflehogSubject(meta *trufflehogMetadata) string {
	if meta == nil {
		return "Unknown"
	}
	data := meta.Data
	switch {
	case data.Filesystem != nil && strings.TrimSpace(data.Filesystem.File) != "":
		return data.Filesystem.File
	case data.Git != nil && strings.TrimSpace(data.Git.File) != "":
		return data.Git.File
	case data.Docker != nil && strings.TrimSpace(data.Docker.Image) != "":
		return data.Docker.Image
	case data.Docker != nil && strings.TrimSpace(data.Docker.File) != "":
		return data.Docker.File
	default:
		return "Unknown"
	}
}
