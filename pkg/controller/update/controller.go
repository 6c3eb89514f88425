// Package update implements the check/update pipeline: scan workflow
// files for action references, look up each action's release catalog,
// decide which references are outdated under the selected policy, report
// the result, and optionally rewrite the files in place.
package update

import (
	"io"

	"github.com/gha-cli/gha-cli/pkg/config"
	"github.com/gha-cli/gha-cli/pkg/github"
	"github.com/gha-cli/gha-cli/pkg/source"
	"github.com/gha-cli/gha-cli/pkg/version"
)

type Controller struct {
	repos  github.RepositoriesService
	source source.Source
	cfg    *config.Config
	param  *Param
	stdout io.Writer
	// catalogs caches one release catalog per action identity for the
	// lifetime of the run.
	catalogs map[string]*version.Catalog
	// fatal is set once a rate-limit or authentication error is seen;
	// further catalog lookups are skipped for the rest of the run.
	fatal error
}

type Param struct {
	WorkflowFilePaths []string
	Policy            version.Policy
	Apply             bool
	IncludePrerelease bool
	CommitMessage     string
}

func New(repos github.RepositoriesService, src source.Source, cfg *config.Config, param *Param, stdout io.Writer) *Controller {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Controller{
		repos:    repos,
		source:   src,
		cfg:      cfg,
		param:    param,
		stdout:   stdout,
		catalogs: map[string]*version.Catalog{},
	}
}
