package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/gha-cli/gha-cli/pkg/controller/update"
	"github.com/gha-cli/gha-cli/pkg/log"
	"github.com/gha-cli/gha-cli/pkg/version"
)

func (r *Runner) newUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Show action updates in repository workflows, optionally applying them",
		Description: `Check every workflow file for outdated action references and report them.

$ gha-cli update

By default a bare major pin such as v2 is treated as satisfied once it matches
the latest major release. Pass --exact to require the pin to match the highest
known release precisely.

Pass --apply to rewrite the files (for a remote repository, to commit the changes).

$ gha-cli update --apply

You can also pass workflow file paths as arguments.

$ gha-cli update .github/workflows/test.yaml
`,
		Action: r.updateAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "apply",
				Aliases: []string{"u"},
				Usage:   "Apply the updates: rewrite local files, or commit to the remote repository",
			},
			&cli.BoolFlag{
				Name:  "exact",
				Usage: "Require pins to match the highest known release precisely",
			},
			&cli.BoolFlag{
				Name:  "prerelease",
				Usage: "Include pre-release tags in the version catalog",
			},
			&cli.StringFlag{
				Name:  "commit-message",
				Value: "chore(ci): update actions",
				Usage: "Commit message, only used when updating a remote repository",
			},
		},
	}
}

func (r *Runner) updateAction(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.LogE)
	cfg, err := r.readConfig(c)
	if err != nil {
		return err
	}
	src, repos, err := r.newSource(ctx, c)
	if err != nil {
		return err
	}
	policy := version.PolicyMajorOnly
	if c.Bool("exact") {
		policy = version.PolicyExact
	}
	param := &update.Param{
		WorkflowFilePaths: c.Args().Slice(),
		Policy:            policy,
		Apply:             c.Bool("apply"),
		IncludePrerelease: c.Bool("prerelease"),
		CommitMessage:     c.String("commit-message"),
	}
	ctrl := update.New(repos, src, cfg, param, r.Stdout)
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
