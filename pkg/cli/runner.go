// Package cli wires the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/gha-cli/gha-cli/pkg/config"
	"github.com/gha-cli/gha-cli/pkg/github"
	"github.com/gha-cli/gha-cli/pkg/source"
)

type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	LDFlags *LDFlags
	LogE    *logrus.Entry
}

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	cmd := &cli.Command{
		Name:    "gha-cli",
		Usage:   "Inventory and update GitHub Actions references in workflow files",
		Version: r.LDFlags.Version + " (" + r.LDFlags.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				Sources: cli.EnvVars("GHA_CLI_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file path",
				Sources: cli.EnvVars("GHA_CLI_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "repo",
				Value: ".",
				Usage: "repository to analyze, a local directory or OWNER/NAME",
			},
			&cli.StringFlag{
				Name:    "github-token",
				Usage:   "GitHub access token",
				Sources: cli.EnvVars("GITHUB_TOKEN"),
			},
		},
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			r.newUpdateCommand(),
			r.newListActionsCommand(),
			r.newListWorkflowsCommand(),
			r.newAnalyzeOrgsCommand(),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}

const tokenNotProvidedMsg = `GitHub access token isn't provided.
Anonymous API requests are rate-limited and remote repositories can't be updated.
Set the GITHUB_TOKEN environment variable or the --github-token option.`

// newSource builds the file source for the --repo flag: a local directory
// tree, or a remote repository for OWNER/NAME coordinates.
func (r *Runner) newSource(ctx context.Context, c *cli.Command) (source.Source, github.RepositoriesService, error) {
	token := c.String("github-token")
	if token == "" {
		fmt.Fprintln(r.Stderr, color.YellowString(tokenNotProvidedMsg))
	}
	gh := github.New(ctx, token)
	repo := c.String("repo")
	if repo == "" {
		repo = "."
	}
	if source.IsLocalPath(repo) {
		return source.NewLocal(afero.NewOsFs(), repo), gh.Repositories, nil
	}
	owner, name, err := source.ParseRepo(repo)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	return source.NewRepository(gh.Repositories, owner, name), gh.Repositories, nil
}

func (r *Runner) readConfig(c *cli.Command) (*config.Config, error) {
	fs := afero.NewOsFs()
	cfgPath, err := config.NewFinder(fs).Find(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, cfgPath); err != nil {
		return nil, fmt.Errorf("read a configuration file: %w", err)
	}
	return cfg, nil
}
