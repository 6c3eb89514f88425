// Package github wraps the GitHub API client used as the release provider
// and as the remote file source. It handles token-based authentication via
// OAuth2 with an anonymous fallback, and classifies API errors so callers
// can tell recoverable conditions (unknown repository) from fatal ones
// (authentication, rate limits).
package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

type (
	ListOptions                  = github.ListOptions
	Response                     = github.Response
	RepositoryTag                = github.RepositoryTag
	RepositoryRelease            = github.RepositoryRelease
	RepositoryContent            = github.RepositoryContent
	RepositoryContentGetOptions  = github.RepositoryContentGetOptions
	RepositoryContentFileOptions = github.RepositoryContentFileOptions
	RepositoryContentResponse    = github.RepositoryContentResponse
	Client                       = github.Client
	Organization                 = github.Organization
	Repository                   = github.Repository
	User                         = github.User
	Team                         = github.Team
	Branch                       = github.Branch
	RepositoryCommit             = github.RepositoryCommit
	PullRequest                  = github.PullRequest
	ListMembersOptions           = github.ListMembersOptions
	RepositoryListByOrgOptions   = github.RepositoryListByOrgOptions
	BranchListOptions            = github.BranchListOptions
	ListCollaboratorsOptions     = github.ListCollaboratorsOptions
	CommitsListOptions           = github.CommitsListOptions
	PullRequestListOptions       = github.PullRequestListOptions
)

// RepositoriesService is the subset of the GitHub repositories API this
// tool consumes: listing releases and tags for the version catalog, and
// reading/committing workflow files for the remote file source.
type RepositoriesService interface {
	ListTags(ctx context.Context, owner, repo string, opts *ListOptions) ([]*RepositoryTag, *Response, error)
	ListReleases(ctx context.Context, owner, repo string, opts *ListOptions) ([]*RepositoryRelease, *Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *RepositoryContentGetOptions) (*RepositoryContent, []*RepositoryContent, *Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *RepositoryContentFileOptions) (*RepositoryContentResponse, *Response, error)
}

// OrganizationsService is the organizations API subset consumed by the
// organization inventory.
type OrganizationsService interface {
	List(ctx context.Context, user string, opts *ListOptions) ([]*Organization, *Response, error)
	Get(ctx context.Context, org string) (*Organization, *Response, error)
	ListMembers(ctx context.Context, org string, opts *ListMembersOptions) ([]*User, *Response, error)
}

type TeamsService interface {
	ListTeams(ctx context.Context, org string, opts *ListOptions) ([]*Team, *Response, error)
}

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *PullRequestListOptions) ([]*PullRequest, *Response, error)
}

// InventoryRepositoriesService is the repositories API subset consumed by
// the organization inventory.
type InventoryRepositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *RepositoryListByOrgOptions) ([]*Repository, *Response, error)
	ListBranches(ctx context.Context, owner, repo string, opts *BranchListOptions) ([]*Branch, *Response, error)
	ListCollaborators(ctx context.Context, owner, repo string, opts *ListCollaboratorsOptions) ([]*User, *Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *CommitsListOptions) ([]*RepositoryCommit, *Response, error)
}

// New creates a GitHub API client. With an empty token requests are made
// anonymously.
func New(ctx context.Context, token string) *Client {
	return github.NewClient(newHTTPClient(ctx, token))
}

func newHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}

func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

// IsNotFound reports whether err means the repository or path doesn't
// exist. Callers degrade this to an empty result instead of failing.
func IsNotFound(err error) bool {
	var gerr *github.ErrorResponse
	if errors.As(err, &gerr) {
		return gerr.Response != nil && gerr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// IsFatal reports whether err is a rate-limit or authentication failure.
// These conditions affect every subsequent API call, so callers stop
// further lookups once one is seen.
func IsFatal(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var gerr *github.ErrorResponse
	if errors.As(err, &gerr) && gerr.Response != nil {
		switch gerr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}
	return false
}
