package adapters

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

func TestParseTruffleHogFileArray(t *testing.T) {
	report := `[
		{
			"DetectorName": "AWS",
			"DetectorDescription": "AWS access key",
			"Verified": true,
			"Redacted": "AKIA************This",
			"SourceMetadata": {"Data": {"Filesystem": {"file": "config/prod.env"}}}
		},
		{
			"DetectorName": "Github",
			"Verified": false,
			"Redacted": "ghp_************",
			"SourceMetadata": {"Data": {"Git": {"file": "scripts/deploy.sh", "repository": "https://github.com/acme/infra.git"}}}
		}
	]`

	got, err := parseTruffleHogBytes("trufflehog-fs-results.json", []byte(report))
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	assert.Equal(t, "AWS", got[0].ID)
	assert.Equal(t, "config/prod.env", got[0].Subject)
	assert.Equal(t, findings.SeverityHigh, got[0].Severity)
	assert.Equal(t, "AWS access key", got[0].Description)
	if assert.NotNil(t, got[0].Verified) {
		assert.True(t, *got[0].Verified)
	}

	assert.Equal(t, "Github", got[1].ID)
	assert.Equal(t, "scripts/deploy.sh", got[1].Subject)
	assert.Equal(t, findings.SeverityHigh, got[1].Severity)
	assert.Equal(t, "ghp_************", got[1].Description)
	if assert.NotNil(t, got[1].Verified) {
		assert.False(t, *got[1].Verified)
	}
}

func TestParseTruffleHogFileJSONL(t *testing.T) {
	report := `{"level":"info-0","msg":"scanning filesystem"}
{"DetectorName":"Slack","DetectorDescription":"Slack token","Verified":false,"SourceMetadata":{"Data":{"Filesystem":{"file":".env"}}}}

{"DetectorName":"PrivateKey","DetectorDescription":"Private key","Verified":true,"SourceMetadata":{"Data":{"Docker":{"image":"registry.local/app:1.2"}}}}
`

	got, err := parseTruffleHogBytes("trufflehog-image-results.json", []byte(report))
	assert.NoError(t, err)
	assert.Len(t, got, 2, "log lines without detector metadata are skipped")
	assert.Equal(t, "Slack", got[0].ID)
	assert.Equal(t, ".env", got[0].Subject)
	assert.Equal(t, "PrivateKey", got[1].ID)
	assert.Equal(t, "registry.local/app:1.2", got[1].Subject)
}

func TestParseTruffleHogFileEmpty(t *testing.T) {
	got, err := parseTruffleHogBytes("trufflehog-empty-results.json", []byte("  \n"))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseTruffleHogFileGarbage(t *testing.T) {
	got, err := parseTruffleHogBytes("trufflehog-bad-results.json", []byte("not json at all\nstill not json"))
	assert.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, stderrors.As(err, &parseErr))
	assert.Empty(t, got)
}

func TestParseTruffleHogFileKeepsVerifiedAndUnverifiedSeparate(t *testing.T) {
	report := `[
		{"DetectorName":"AWS","DetectorDescription":"AWS access key","Verified":true,"SourceMetadata":{"Data":{"Filesystem":{"file":"a.env"}}}},
		{"DetectorName":"AWS","DetectorDescription":"AWS access key","Verified":false,"SourceMetadata":{"Data":{"Filesystem":{"file":"a.env"}}}}
	]`

	got, err := parseTruffleHogBytes("trufflehog-fs-results.json", []byte(report))
	assert.NoError(t, err)
	assert.Len(t, got, 2, "verified and unverified hits on the same detector stay separate")
}

func TestTrufflehogSubject(t *testing.T) {
	tests := []struct {
		name     string
		meta     *trufflehogMetadata
		expected string
	}{
		{
			name:     "filesystem file",
			meta:     &trufflehogMetadata{Data: trufflehogMetadataData{Filesystem: &trufflehogFileSource{File: "secrets.yaml"}}},
			expected: "secrets.yaml",
		},
		{
			name:     "git file",
			meta:     &trufflehogMetadata{Data: trufflehogMetadataData{Git: &trufflehogGitSource{File: "main.tf"}}},
			expected: "main.tf",
		},
		{
			name:     "docker image",
			meta:     &trufflehogMetadata{Data: trufflehogMetadataData{Docker: &trufflehogDockerSource{Image: "app:latest"}}},
			expected: "app:latest",
		},
		{
			name:     "no source",
			meta:     &trufflehogMetadata{},
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trufflehogSubject(tt.meta))
		})
	}
}
