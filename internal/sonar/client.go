// Package sonar pulls open issues for a project out of a SonarQube server
// and writes them in the export shape the findings pipeline parses.
package sonar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/files"
	"github.com/scan-io-git/reportio/pkg/shared/httpclient"
)

// OutputFile is the export name the finding discovery matches on.
const OutputFile = "sonar-analysis-results.json"

// pageSize is the issue page size requested from the web API. 500 is the
// server-side maximum.
const pageSize = 500

// maxPages stops paging at the web API's 10k issue window.
const maxPages = 20

type Client struct {
	httpc  *resty.Client
	logger hclog.Logger
}

// Issue carries the fields of a web API issue that survive into the
// export document.
type Issue struct {
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Component string `json:"component"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
}

// Export is the document shape consumed downstream.
type Export struct {
	Issues []Issue `json:"issues"`
}

type paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

type searchIssuesResult struct {
	// Older servers report the total at the top level, current ones
	// inside the paging block.
	Total  int     `json:"total"`
	Paging paging  `json:"paging"`
	Issues []Issue `json:"issues"`
}

// New builds a client for one server. The token is sent as basic auth
// login with an empty password, which every SonarQube release accepts.
func New(logger hclog.Logger, cfg *config.Config, url, token string) Client {
	httpc := httpclient.InitializeRestyClient(logger, cfg)
	httpc.SetBaseURL(url)
	if cfg != nil && cfg.SonarQube.Timeout > 0 {
		httpc.SetTimeout(cfg.SonarQube.Timeout)
	}
	if token != "" {
		httpc.SetBasicAuth(token, "")
	}

	return Client{
		httpc:  httpc,
		logger: logger,
	}
}

// SearchIssues pages through /api/issues/search and returns every
// unresolved issue of the project.
func (c Client) SearchIssues(ctx context.Context, project string) ([]Issue, error) {
	var issues []Issue
	for page := 1; page <= maxPages; page++ {
		var result searchIssuesResult
		resp, err := c.httpc.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"componentKeys": project,
				"resolved":      "false",
				"ps":            strconv.Itoa(pageSize),
				"p":             strconv.Itoa(page),
			}).
			SetResult(&result).
			Get("/api/issues/search")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("%d on searching issues for project '%s'", resp.StatusCode(), project)
		}

		issues = append(issues, result.Issues...)

		total := result.Paging.Total
		if total == 0 {
			total = result.Total
		}
		c.logger.Debug("fetched issue page", "project", project, "page", page, "page_issues", len(result.Issues), "total", total)

		if len(result.Issues) == 0 || len(issues) >= total {
			break
		}
	}
	return issues, nil
}

// FetchToFile searches a project and writes the export document into
// outputFolder, returning the written path. An issue-free project still
// produces a document, with an empty issue list.
func (c Client) FetchToFile(ctx context.Context, project, outputFolder string) (string, error) {
	issues, err := c.SearchIssues(ctx, project)
	if err != nil {
		return "", err
	}
	if issues == nil {
		issues = []Issue{}
	}

	data, err := json.MarshalIndent(Export{Issues: issues}, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputFolder, OutputFile)
	if err := files.WriteJsonFile(path, append(data, '\n')); err != nil {
		return "", err
	}
	c.logger.Info("issues exported", "project", project, "issues", len(issues), "path", path)
	return path, nil
}
