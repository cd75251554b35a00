package dashboard

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDashboardArgs(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "reportio_example")
	assert.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	tmpFile, err := os.CreateTemp(tmpDir, "reportio_testfile")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	tests := []struct {
		name    string
		options RunOptionsDashboard
		wantErr string
	}{
		{
			// valid: reportio dashboard --input raw-reports --output security-reports
			name: "Valid input and output folders",
			options: RunOptionsDashboard{
				InputFolder:  tmpDir,
				OutputFolder: tmpDir,
			},
			wantErr: "",
		},
		{
			// fail: reportio dashboard --output security-reports
			name: "Missing input flag",
			options: RunOptionsDashboard{
				OutputFolder: tmpDir,
			},
			wantErr: "the 'input' flag must be specified",
		},
		{
			// fail: reportio dashboard --input /invalid/path --output security-reports
			name: "Input folder does not exist",
			options: RunOptionsDashboard{
				InputFolder:  "/invalid/path/to/raw-reports",
				OutputFolder: tmpDir,
			},
			wantErr: "the input folder does not exist: /invalid/path/to/raw-reports",
		},
		{
			// fail: the input path points at a file
			name: "Input path is a file",
			options: RunOptionsDashboard{
				InputFolder:  tmpFile.Name(),
				OutputFolder: tmpDir,
			},
			wantErr: "the input path is not a folder: " + tmpFile.Name(),
		},
		{
			// fail: reportio dashboard --input raw-reports
			name: "Missing output flag",
			options: RunOptionsDashboard{
				InputFolder: tmpDir,
			},
			wantErr: "the 'output' flag must be specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDashboardArgs(&tt.options)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
