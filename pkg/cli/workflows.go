package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/gha-cli/gha-cli/pkg/controller/workflows"
	"github.com/gha-cli/gha-cli/pkg/log"
)

func (r *Runner) newListWorkflowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-workflows",
		Usage: "List workflow files in the repository",
		Description: `List workflow file paths together with their workflow names.

$ gha-cli list-workflows
`,
		Action: r.listWorkflowsAction,
	}
}

func (r *Runner) listWorkflowsAction(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.LogE)
	src, _, err := r.newSource(ctx, c)
	if err != nil {
		return err
	}
	ctrl := workflows.New(src, r.Stdout)
	return ctrl.List(ctx, r.LogE) //nolint:wrapcheck
}
