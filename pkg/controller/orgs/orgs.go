package orgs

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/gha-cli/gha-cli/pkg/github"
)

// The API reports repository sizes in KiB, so this threshold is 1 GiB.
const largeRepoKiB = 1024 * 1024

const activeWindow = 365 * 24 * time.Hour

type orgRow struct {
	Name         string
	MembersCount int
	TeamsCount   int
	Repositories []*repoRow
}

type repoRow struct {
	Name               string
	IsPrivate          bool
	IsArchived         bool
	BranchesCount      int
	CollaboratorsCount int
	IsActive           bool
	HasIssues          bool
	HasPullRequests    bool
	Size               int
	LargeRepo          bool
	IsTemplate         bool
	ForksCount         int
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	logins, err := c.listOrgs(ctx)
	if err != nil {
		return fmt.Errorf("list organizations of the authenticated user: %w", err)
	}
	logE.WithField("num_of_orgs", len(logins)).Info("analyzing organizations")
	rows := make([]*orgRow, 0, len(logins))
	for _, login := range logins {
		if slices.Contains(c.param.Excludes, login) {
			continue
		}
		row, err := c.analyzeOrg(ctx, logE, login)
		if err != nil {
			return fmt.Errorf("analyze an organization: %w", logerr.WithFields(err, logrus.Fields{
				"org": login,
			}))
		}
		rows = append(rows, row)
	}
	return c.render(rows)
}

func (c *Controller) listOrgs(ctx context.Context) ([]string, error) {
	logins := []string{}
	opts := &github.ListOptions{PerPage: 100}
	for {
		orgList, resp, err := c.orgs.List(ctx, "", opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		for _, org := range orgList {
			logins = append(logins, org.GetLogin())
		}
		if resp.NextPage == 0 {
			return logins, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Controller) analyzeOrg(ctx context.Context, logE *logrus.Entry, login string) (*orgRow, error) {
	org, _, err := c.orgs.Get(ctx, login)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	name := org.GetName()
	if name == "" {
		name = login
	}
	members, resp, err := c.orgs.ListMembers(ctx, login, &github.ListMembersOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	membersCount := count(len(members), resp)
	teams, resp, err := c.teams.ListTeams(ctx, login, &github.ListOptions{PerPage: 1})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	row := &orgRow{
		Name:         name,
		MembersCount: membersCount,
		TeamsCount:   count(len(teams), resp),
	}
	logE.WithField("org", login).Info("analyzing repositories")
	repos, err := c.listRepos(ctx, login)
	if err != nil {
		return nil, err
	}
	for _, repo := range repos {
		rr, err := c.analyzeRepo(ctx, logE, login, repo)
		if err != nil {
			return nil, err
		}
		row.Repositories = append(row.Repositories, rr)
	}
	return row, nil
}

func (c *Controller) listRepos(ctx context.Context, org string) ([]*github.Repository, error) {
	repos := []*github.Repository{}
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		page, resp, err := c.repos.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("list repositories of an organization: %w", err)
		}
		repos = append(repos, page...)
		if resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Controller) analyzeRepo(ctx context.Context, logE *logrus.Entry, org string, repo *github.Repository) (*repoRow, error) {
	name := repo.GetName()
	branches, resp, err := c.repos.ListBranches(ctx, org, name, &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", logerr.WithFields(err, logrus.Fields{
			"repo": name,
		}))
	}
	collaborators, cresp, err := c.repos.ListCollaborators(ctx, org, name, &github.ListCollaboratorsOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", logerr.WithFields(err, logrus.Fields{
			"repo": name,
		}))
	}
	pulls, presp, err := c.pulls.List(ctx, org, name, &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", logerr.WithFields(err, logrus.Fields{
			"repo": name,
		}))
	}
	return &repoRow{
		Name:               name,
		IsPrivate:          repo.GetPrivate(),
		IsArchived:         repo.GetArchived(),
		BranchesCount:      count(len(branches), resp),
		CollaboratorsCount: count(len(collaborators), cresp),
		IsActive:           c.isActive(ctx, logE, org, name),
		HasIssues:          repo.GetHasIssues(),
		HasPullRequests:    count(len(pulls), presp) > 0,
		Size:               repo.GetSize(),
		LargeRepo:          repo.GetSize() > largeRepoKiB,
		IsTemplate:         repo.GetIsTemplate(),
		ForksCount:         repo.GetForksCount(),
	}, nil
}

// isActive reports whether the repository had a commit within the last
// year. Listing commits fails on empty repositories; that counts as
// inactive.
func (c *Controller) isActive(ctx context.Context, logE *logrus.Entry, org, name string) bool {
	commits, resp, err := c.repos.ListCommits(ctx, org, name, &github.CommitsListOptions{
		Since:       time.Now().Add(-activeWindow),
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		logerr.WithError(logE.WithFields(logrus.Fields{
			"org":  org,
			"repo": name,
		}), err).Warn("list commits")
		return false
	}
	return count(len(commits), resp) > 0
}

// count derives a total from a one-item page: the API encodes the number
// of pages in the Link header, which the client exposes as LastPage.
func count(n int, resp *github.Response) int {
	if resp.LastPage > 0 {
		return resp.LastPage
	}
	return n
}
