// Package ci reads scan provenance out of well-known CI environment
// variables. Report runs usually happen inside a pipeline job where the
// checked-out tree may be shallow or detached; the job environment still
// knows which repository, branch and commit the raw scanner reports
// belong to, so report headers fall back to it when git metadata is not
// resolvable.
package ci

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/scan-io-git/reportio/internal/git"
)

// Kind identifies the CI provider a job runs on.
type Kind int

const (
	KindUnknown Kind = iota
	KindGitHub
	KindGitLab
	KindBitbucket
)

// String returns the provider name in lower case.
func (k Kind) String() string {
	switch k {
	case KindGitHub:
		return "github"
	case KindGitLab:
		return "gitlab"
	case KindBitbucket:
		return "bitbucket"
	default:
		return "unknown"
	}
}

// lookupFunc fetches environment variables; tests substitute a stub.
type lookupFunc func(string) string

// Environment is the provenance a CI job exposes about the scanned
// repository. Fields stay empty when the provider does not publish them.
type Environment struct {
	Kind               Kind
	CI                 bool   // true when the job reports CI=true
	CommitHash         string // tip commit that triggered the job
	Reference          string // fully qualified ref, e.g. refs/heads/main
	ReferenceName      string // short ref or branch name
	RepositoryFullName string // namespace-qualified name, e.g. org/repo
	RepositoryURL      string // web URL of the repository
}

// Detect infers the CI provider from well-known environment variables.
func Detect() Kind {
	return detect(os.Getenv)
}

func detect(lookup lookupFunc) Kind {
	if lookup("GITHUB_REPOSITORY") != "" || lookup("GITHUB_SHA") != "" {
		return KindGitHub
	}
	if strings.EqualFold(lookup("GITLAB_CI"), "true") || lookup("CI_PROJECT_PATH") != "" {
		return KindGitLab
	}
	if lookup("BITBUCKET_WORKSPACE") != "" || lookup("BITBUCKET_REPO_SLUG") != "" {
		return KindBitbucket
	}
	return KindUnknown
}

// Describe detects the provider and extracts its provenance. The second
// return is false outside any recognized CI environment.
func Describe() (Environment, bool) {
	return describe(os.Getenv)
}

func describe(lookup lookupFunc) (Environment, bool) {
	switch detect(lookup) {
	case KindGitHub:
		return githubEnvironment(lookup), true
	case KindGitLab:
		return gitlabEnvironment(lookup), true
	case KindBitbucket:
		return bitbucketEnvironment(lookup), true
	default:
		return Environment{}, false
	}
}

// RepositoryMetadata shapes the provenance into the report-header form.
// Returns nil when the environment holds nothing a header could show.
func (e Environment) RepositoryMetadata() *git.RepositoryMetadata {
	md := &git.RepositoryMetadata{}
	empty := true

	if e.CommitHash != "" {
		hash := e.CommitHash
		md.CommitHash = &hash
		empty = false
	}
	if e.ReferenceName != "" {
		branch := e.ReferenceName
		md.BranchName = &branch
		empty = false
	}
	if origin := e.origin(); origin != "" {
		md.RepositoryFullName = &origin
		empty = false
	}

	if empty {
		return nil
	}
	return md
}

func (e Environment) origin() string {
	if e.RepositoryURL != "" {
		return strings.TrimSuffix(e.RepositoryURL, ".git")
	}
	return e.RepositoryFullName
}

// See https://docs.github.com/en/actions/reference/workflows-and-actions/variables.
func githubEnvironment(lookup lookupFunc) Environment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	fullName := lookup("GITHUB_REPOSITORY")
	repositoryURL := ""
	if server := lookup("GITHUB_SERVER_URL"); server != "" && fullName != "" {
		repositoryURL = server + "/" + fullName
	}

	return Environment{
		Kind:               KindGitHub,
		CI:                 ci,
		CommitHash:         lookup("GITHUB_SHA"),
		Reference:          lookup("GITHUB_REF"),
		ReferenceName:      lookup("GITHUB_REF_NAME"),
		RepositoryFullName: fullName,
		RepositoryURL:      repositoryURL,
	}
}

// See https://docs.gitlab.com/ci/variables/predefined_variables/.
func gitlabEnvironment(lookup lookupFunc) Environment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	var reference, refName string
	if tag := lookup("CI_COMMIT_TAG"); tag != "" {
		reference = "refs/tags/" + tag
		refName = tag
	} else if mrRef := lookup("CI_MERGE_REQUEST_REF_PATH"); mrRef != "" {
		reference = mrRef
		refName = lookup("CI_MERGE_REQUEST_SOURCE_BRANCH_NAME")
	} else {
		refName = lookup("CI_COMMIT_REF_NAME")
		if refName != "" {
			reference = "refs/heads/" + refName
		}
	}

	return Environment{
		Kind:               KindGitLab,
		CI:                 ci,
		CommitHash:         lookup("CI_COMMIT_SHA"),
		Reference:          reference,
		ReferenceName:      refName,
		RepositoryFullName: lookup("CI_PROJECT_PATH"),
		RepositoryURL:      lookup("CI_PROJECT_URL"),
	}
}

// See https://support.atlassian.com/bitbucket-cloud/docs/variables-and-secrets/.
func bitbucketEnvironment(lookup lookupFunc) Environment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	var reference, refName string
	if tag := lookup("BITBUCKET_TAG"); tag != "" {
		reference = "refs/tags/" + tag
		refName = tag
	} else if branch := lookup("BITBUCKET_BRANCH"); branch != "" {
		reference = "refs/heads/" + branch
		refName = branch
	}

	origin := lookup("BITBUCKET_GIT_HTTP_ORIGIN")
	if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
		origin = ""
	}

	return Environment{
		Kind:               KindBitbucket,
		CI:                 ci,
		CommitHash:         lookup("BITBUCKET_COMMIT"),
		Reference:          reference,
		ReferenceName:      refName,
		RepositoryFullName: lookup("BITBUCKET_REPO_FULL_NAME"),
		RepositoryURL:      origin,
	}
}
