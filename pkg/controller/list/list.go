// Package list implements the list-actions command: print every action
// reference found in the given workflow files, one per line, in document
// order.
package list

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/gha-cli/gha-cli/pkg/source"
	"github.com/gha-cli/gha-cli/pkg/workflow"
)

type Controller struct {
	source source.Source
	stdout io.Writer
}

func New(src source.Source, stdout io.Writer) *Controller {
	return &Controller{source: src, stdout: stdout}
}

// List prints the action references of each file. Local composite actions
// are printed as their path; everything else as identity@ref.
func (c *Controller) List(ctx context.Context, logE *logrus.Entry, paths []string) error {
	if len(paths) == 0 {
		var err error
		paths, err = c.source.List(ctx)
		if err != nil {
			return fmt.Errorf("list workflow files: %w", err)
		}
	}
	for _, p := range paths {
		if err := c.listFile(ctx, logE.WithField("workflow_file", p), p); err != nil {
			logerr.WithError(logE.WithField("workflow_file", p), err).Error("list actions in a workflow file")
		}
	}
	return nil
}

func (c *Controller) listFile(ctx context.Context, logE *logrus.Entry, path string) error {
	content, err := c.source.Read(ctx, path)
	if err != nil {
		return err //nolint:wrapcheck
	}
	usages, err := workflow.Scan(content)
	if err != nil {
		return err //nolint:wrapcheck
	}
	for _, u := range usages {
		if u.Err != nil {
			logerr.WithError(logE.WithFields(logrus.Fields{
				"line": u.Line,
				"uses": u.Raw,
			}), u.Err).Warn("parse an action reference")
			continue
		}
		if u.Reference.Identity.IsLocal() || u.Reference.Ref.Raw == "" {
			fmt.Fprintln(c.stdout, u.Reference.Identity.String())
			continue
		}
		fmt.Fprintf(c.stdout, "%s@%s\n", u.Reference.Identity.String(), u.Reference.Ref.Raw)
	}
	return nil
}
