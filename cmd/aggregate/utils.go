package aggregate

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/ci"
	"github.com/scan-io-git/reportio/internal/git"
	"github.com/scan-io-git/reportio/internal/render"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// Render format names accepted by the formats flag.
const (
	FormatJSON     = "json"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatSarif    = "sarif"
)

// allFormats is the default set, rendered when no formats flag is given.
var allFormats = []string{FormatJSON, FormatHTML, FormatMarkdown, FormatSarif}

// applyConfigDefaults fills unset options from the loaded configuration.
func applyConfigDefaults(cfg *config.Config, options *RunOptionsAggregate) {
	if len(options.Formats) == 0 {
		options.Formats = allFormats
	}
	if options.TopSubjects == 0 && cfg != nil {
		options.TopSubjects = cfg.Reports.TopSubjects
	}
	if options.TopSubjects == 0 {
		options.TopSubjects = aggregator.DefaultTopSubjects
	}
}

// descriptionLimit resolves the configured description cap, zero meaning
// the renderer default.
func descriptionLimit(cfg *config.Config) int {
	if cfg == nil {
		return 0
	}
	return cfg.Reports.DescriptionLimit
}

// resolveRepositoryMetadata decorates the summaries with provenance. The
// scanned source tree is authoritative when it resolves as a git
// repository; otherwise the CI job environment is consulted, so pipeline
// runs on shallow or exported trees still state what was scanned. Reports
// render fine without metadata, failures here only reduce the header.
func resolveRepositoryMetadata(logger hclog.Logger, sourceFolder string) *git.RepositoryMetadata {
	if sourceFolder != "" {
		metadata, err := git.CollectRepositoryMetadata(sourceFolder)
		if err == nil {
			return metadata
		}
		logger.Debug("no git metadata in source tree", "source", sourceFolder, "error", err)
	}

	if env, ok := ci.Describe(); ok {
		if metadata := env.RepositoryMetadata(); metadata != nil {
			logger.Debug("repository metadata taken from CI environment", "provider", env.Kind.String())
			return metadata
		}
	}
	return nil
}

// renderFormats runs every requested renderer. A failing renderer is
// logged and counted, never short-circuits its siblings; when any failed
// the command exits non-zero after all of them ran.
func renderFormats(logger hclog.Logger, report *aggregator.Report, opts render.Options, options *RunOptionsAggregate) error {
	var failed int

	fail := func(format string, err error) {
		failed++
		logger.Error("renderer failed", "format", format, "error", err)
	}

	for _, format := range options.Formats {
		switch format {
		case FormatJSON:
			if path, err := render.WriteSummaryJSON(report, opts, options.OutputFolder); err != nil {
				fail(format, err)
			} else {
				logger.Info("summary written", "format", format, "path", path)
			}
		case FormatHTML:
			if path, err := render.WriteSummaryHTML(report, opts, options.OutputFolder); err != nil {
				fail(format, err)
			} else {
				logger.Info("summary written", "format", format, "path", path)
			}
			if err := render.WriteHTMLTree(logger, report, opts, options.OutputFolder); err != nil {
				fail(format, err)
			}
		case FormatMarkdown:
			if path, err := render.WriteSummaryMarkdown(report, opts, options.OutputFolder); err != nil {
				fail(format, err)
			} else {
				logger.Info("summary written", "format", format, "path", path)
			}
			if err := render.WriteMarkdownTree(logger, report, opts, options.OutputFolder); err != nil {
				fail(format, err)
			}
		case FormatSarif:
			if path, err := render.WriteSarif(report, options.OutputFolder); err != nil {
				fail(format, err)
			} else {
				logger.Info("summary written", "format", format, "path", path)
			}
		}
	}

	if failed > 0 {
		return errors.NewCommandError(fmt.Errorf("%d renderer(s) failed", failed), 2)
	}
	return nil
}
