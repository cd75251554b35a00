package adapters

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// ParseClamAVFile reads a clamscan log and turns every "FOUND" line into a
// Critical finding. Lines look like:
//
//	/srv/data/eicar.txt: Eicar-Signature FOUND
func ParseClamAVFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolClamAV, path)
	if err != nil {
		return nil, err
	}
	return parseClamAVBytes(path, data)
}

func parseClamAVBytes(path string, data []byte) ([]findings.Finding, error) {
	result := []findings.Finding{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, "FOUND") {
			continue
		}

		file, signature := splitClamAVLine(line)
		result = append(result, findings.Finding{
			Tool:         findings.ToolClamAV,
			Severity:     findings.Normalize(findings.ToolClamAV, ""),
			ID:           orUnknown(signature),
			Subject:      orUnknown(file),
			Description:  line,
			SourceReport: path,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParseError(string(findings.ToolClamAV), path, err)
	}

	return deduplicate(result), nil
}

// splitClamAVLine separates the scanned path from the signature name. The
// path may itself contain ": ", so the split runs on the last separator
// before the FOUND marker.
func splitClamAVLine(line string) (file, signature string) {
	body := line
	if idx := strings.LastIndex(body, " FOUND"); idx >= 0 {
		body = body[:idx]
	}
	idx := strings.LastIndex(body, ": ")
	if idx < 0 {
		return "", strings.TrimSpace(body)
	}
	return strings.TrimSpace(body[:idx]), strings.TrimSpace(body[idx+2:])
}
