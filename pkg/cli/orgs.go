package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/gha-cli/gha-cli/pkg/controller/orgs"
	"github.com/gha-cli/gha-cli/pkg/github"
	"github.com/gha-cli/gha-cli/pkg/log"
)

func (r *Runner) newAnalyzeOrgsCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze-orgs",
		Usage: "Inventory the organizations of the authenticated user",
		Description: `Print a CSV inventory of every organization the authenticated user
belongs to, followed by a repository table per organization.

$ gha-cli analyze-orgs -x my-sandbox-org
`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "organization to skip, repeatable",
			},
		},
		Action: r.analyzeOrgsAction,
	}
}

func (r *Runner) analyzeOrgsAction(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.LogE)
	token := c.String("github-token")
	if token == "" {
		fmt.Fprintln(r.Stderr, color.YellowString(tokenNotProvidedMsg))
	}
	gh := github.New(ctx, token)
	ctrl := orgs.New(gh.Organizations, gh.Teams, gh.Repositories, gh.PullRequests, r.Stdout, &orgs.Param{
		Excludes: c.StringSlice("exclude"),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
