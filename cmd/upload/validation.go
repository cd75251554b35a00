package upload

import (
	"fmt"
	"os"
)

// validateUploadArgs validates the arguments provided to the upload command.
func validateUploadArgs(options *RunOptionsUpload) error {
	if options.InputFolder == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}

	info, err := os.Stat(options.InputFolder)
	if os.IsNotExist(err) {
		return fmt.Errorf("the input folder does not exist: %v", options.InputFolder)
	}
	if err == nil && !info.IsDir() {
		return fmt.Errorf("the input path is not a folder: %v", options.InputFolder)
	}

	if options.Bucket == "" {
		return fmt.Errorf("the 'bucket' flag or the upload.bucket config value must be specified")
	}

	return nil
}
