// Package orgs implements the analyze-orgs command. It walks every
// organization of the authenticated user and prints an inventory as CSV:
// one table of organizations, then one table of repositories per
// organization.
package orgs

import (
	"io"

	"github.com/gha-cli/gha-cli/pkg/github"
)

type Controller struct {
	orgs   github.OrganizationsService
	teams  github.TeamsService
	repos  github.InventoryRepositoriesService
	pulls  github.PullRequestsService
	stdout io.Writer
	param  *Param
}

type Param struct {
	// Excludes lists organization logins to skip.
	Excludes []string
}

func New(orgSvc github.OrganizationsService, teamSvc github.TeamsService, repoSvc github.InventoryRepositoriesService, pullSvc github.PullRequestsService, stdout io.Writer, param *Param) *Controller {
	if param == nil {
		param = &Param{}
	}
	return &Controller{
		orgs:   orgSvc,
		teams:  teamSvc,
		repos:  repoSvc,
		pulls:  pullSvc,
		stdout: stdout,
		param:  param,
	}
}
