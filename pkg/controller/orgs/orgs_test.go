package orgs_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/gha-cli/gha-cli/pkg/controller/orgs"
	"github.com/gha-cli/gha-cli/pkg/github"
)

var errEmptyRepo = errors.New("409 Git Repository is empty")

type fakeOrganizationsService struct {
	logins  []string
	names   map[string]string
	members map[string]int
}

func (f *fakeOrganizationsService) List(_ context.Context, _ string, _ *github.ListOptions) ([]*github.Organization, *github.Response, error) {
	orgList := make([]*github.Organization, 0, len(f.logins))
	for _, login := range f.logins {
		orgList = append(orgList, &github.Organization{Login: github.Ptr(login)})
	}
	return orgList, &github.Response{}, nil
}

func (f *fakeOrganizationsService) Get(_ context.Context, org string) (*github.Organization, *github.Response, error) {
	o := &github.Organization{Login: github.Ptr(org)}
	if name, ok := f.names[org]; ok {
		o.Name = github.Ptr(name)
	}
	return o, &github.Response{}, nil
}

func (f *fakeOrganizationsService) ListMembers(_ context.Context, org string, _ *github.ListMembersOptions) ([]*github.User, *github.Response, error) {
	n := f.members[org]
	return make([]*github.User, onePage(n)), countResponse(n), nil
}

type fakeTeamsService struct {
	teams map[string]int
}

func (f *fakeTeamsService) ListTeams(_ context.Context, org string, _ *github.ListOptions) ([]*github.Team, *github.Response, error) {
	n := f.teams[org]
	return make([]*github.Team, onePage(n)), countResponse(n), nil
}

type fakePullRequestsService struct {
	open map[string]int
}

func (f *fakePullRequestsService) List(_ context.Context, owner, repo string, _ *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	n := f.open[owner+"/"+repo]
	return make([]*github.PullRequest, onePage(n)), countResponse(n), nil
}

type fakeInventoryService struct {
	repos         map[string][]*github.Repository
	branches      map[string]int
	collaborators map[string]int
	commits       map[string]int
	commitsErr    map[string]error
}

func (f *fakeInventoryService) ListByOrg(_ context.Context, org string, _ *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	return f.repos[org], &github.Response{}, nil
}

func (f *fakeInventoryService) ListBranches(_ context.Context, owner, repo string, _ *github.BranchListOptions) ([]*github.Branch, *github.Response, error) {
	n := f.branches[owner+"/"+repo]
	return make([]*github.Branch, onePage(n)), countResponse(n), nil
}

func (f *fakeInventoryService) ListCollaborators(_ context.Context, owner, repo string, _ *github.ListCollaboratorsOptions) ([]*github.User, *github.Response, error) {
	n := f.collaborators[owner+"/"+repo]
	return make([]*github.User, onePage(n)), countResponse(n), nil
}

func (f *fakeInventoryService) ListCommits(_ context.Context, owner, repo string, _ *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	key := owner + "/" + repo
	if err := f.commitsErr[key]; err != nil {
		return nil, nil, err
	}
	n := f.commits[key]
	return make([]*github.RepositoryCommit, onePage(n)), countResponse(n), nil
}

// onePage is the number of items a PerPage=1 request returns.
func onePage(total int) int {
	if total > 0 {
		return 1
	}
	return 0
}

// countResponse mimics the pagination the API reports for a PerPage=1
// request: the last page number equals the total, and the Link header is
// omitted entirely for totals of zero or one.
func countResponse(total int) *github.Response {
	if total > 1 {
		return &github.Response{LastPage: total}
	}
	return &github.Response{}
}

func TestController_Run(t *testing.T) { //nolint:funlen
	t.Parallel()
	orgSvc := &fakeOrganizationsService{
		logins: []string{"acme", "beta", "sandbox"},
		names:  map[string]string{"acme": "Acme Inc."},
		members: map[string]int{
			"acme": 3,
			"beta": 1,
		},
	}
	teamSvc := &fakeTeamsService{
		teams: map[string]int{"acme": 2},
	}
	repoSvc := &fakeInventoryService{
		repos: map[string][]*github.Repository{
			"acme": {
				{
					Name:       github.Ptr("api"),
					Private:    github.Ptr(true),
					HasIssues:  github.Ptr(true),
					Size:       github.Ptr(2 * 1024 * 1024),
					ForksCount: github.Ptr(4),
				},
				{
					Name:     github.Ptr("www"),
					Archived: github.Ptr(true),
					Size:     github.Ptr(10),
				},
			},
		},
		branches: map[string]int{
			"acme/api": 5,
			"acme/www": 1,
		},
		collaborators: map[string]int{
			"acme/api": 2,
			"acme/www": 1,
		},
		commits: map[string]int{
			"acme/api": 12,
		},
		// listing commits of an empty repository fails with 409
		commitsErr: map[string]error{
			"acme/www": errEmptyRepo,
		},
	}
	pullSvc := &fakePullRequestsService{
		open: map[string]int{"acme/api": 3},
	}
	stdout := &bytes.Buffer{}
	ctrl := orgs.New(orgSvc, teamSvc, repoSvc, pullSvc, stdout, &orgs.Param{
		Excludes: []string{"sandbox"},
	})
	logE := logrus.NewEntry(logrus.New())
	if err := ctrl.Run(context.Background(), logE); err != nil {
		t.Fatal(err)
	}
	exp := `name,members_count,teams_count,repositories_count
Acme Inc.,3,2,2
beta,1,0,0
name,is_private,is_archived,branches_count,collaborators_count,is_active,has_issues,has_pull_requests,size,large_repo,is_template,forks_count
api,true,false,5,2,true,true,true,2097152,true,false,4
www,false,true,1,1,false,false,false,10,false,false,0
`
	if stdout.String() != exp {
		t.Fatalf("wanted:\n%s\ngot:\n%s", exp, stdout.String())
	}
}

func TestController_Run_noOrgs(t *testing.T) {
	t.Parallel()
	stdout := &bytes.Buffer{}
	ctrl := orgs.New(&fakeOrganizationsService{}, &fakeTeamsService{}, &fakeInventoryService{}, &fakePullRequestsService{}, stdout, nil)
	logE := logrus.NewEntry(logrus.New())
	if err := ctrl.Run(context.Background(), logE); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "" {
		t.Fatalf("wanted no output, got:\n%s", stdout.String())
	}
}
