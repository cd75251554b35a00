package adapters

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

func TestParseSonarQubeFileIssues(t *testing.T) {
	report := `{
		"total": 3,
		"issues": [
			{"rule": "java:S2076", "severity": "BLOCKER", "component": "acme:src/main/java/Exec.java", "message": "Make sure the command is safe here.", "type": "VULNERABILITY"},
			{"rule": "java:S2078", "severity": "CRITICAL", "component": "acme:src/main/java/Ldap.java", "message": "LDAP query built from user input."},
			{"rule": "java:S1192", "severity": "MINOR", "component": "acme:src/main/java/Config.java", "message": "Define a constant instead of duplicating the literal."}
		]
	}`

	got, err := parseSonarQubeBytes("sonar-analysis-results.json", []byte(report))
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	assert.Equal(t, "java:S2076", got[0].ID)
	assert.Equal(t, "acme:src/main/java/Exec.java", got[0].Subject)
	assert.Equal(t, findings.SeverityCritical, got[0].Severity, "BLOCKER maps to Critical")
	assert.Equal(t, findings.SeverityHigh, got[1].Severity, "CRITICAL maps to High")
	assert.Equal(t, findings.SeverityLow, got[2].Severity, "MINOR maps to Low")
}

func TestParseSonarQubeFileMetricShapes(t *testing.T) {
	// Exports of test or coverage summaries are legitimate pipeline output
	// and simply hold no issues.
	shapes := []string{
		`{"test_results": {"total": 120, "failures": 0, "errors": 0}, "coverage": 84.2}`,
		`{"component": {"key": "acme", "measures": [{"metric": "coverage", "value": "84.2"}]}}`,
		`{"coverage": "84.2"}`,
	}

	for _, shape := range shapes {
		got, err := parseSonarQubeBytes("sonar-analysis-results.json", []byte(shape))
		assert.NoError(t, err, "shape %s", shape)
		assert.Empty(t, got, "shape %s", shape)
	}
}

func TestParseSonarQubeFileMalformed(t *testing.T) {
	_, err := parseSonarQubeBytes("sonar-analysis-results.json", []byte(`{"issues": [`))
	assert.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, stderrors.As(err, &parseErr))
}
