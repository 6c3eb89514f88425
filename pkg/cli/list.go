package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/gha-cli/gha-cli/pkg/controller/list"
	"github.com/gha-cli/gha-cli/pkg/log"
)

func (r *Runner) newListActionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-actions",
		Usage: "List actions used in workflow files",
		Description: `List action references, one per line, in document order.

$ gha-cli list-actions .github/workflows/test.yaml

Without arguments every workflow file of the repository is listed.
`,
		Action: r.listActionsAction,
	}
}

func (r *Runner) listActionsAction(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.LogE)
	src, _, err := r.newSource(ctx, c)
	if err != nil {
		return err
	}
	ctrl := list.New(src, r.Stdout)
	return ctrl.List(ctx, r.LogE, c.Args().Slice()) //nolint:wrapcheck
}
