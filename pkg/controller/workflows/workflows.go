// Package workflows implements the list-workflows command.
package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"gopkg.in/yaml.v3"

	"github.com/gha-cli/gha-cli/pkg/source"
)

type Controller struct {
	source source.Source
	stdout io.Writer
}

func New(src source.Source, stdout io.Writer) *Controller {
	return &Controller{source: src, stdout: stdout}
}

// List prints every workflow file path together with the workflow's name:
// field. The path stands in for the name when the file has none or the
// name can't be read.
func (c *Controller) List(ctx context.Context, logE *logrus.Entry) error {
	paths, err := c.source.List(ctx)
	if err != nil {
		return fmt.Errorf("list workflow files: %w", err)
	}
	for _, p := range paths {
		name, err := c.workflowName(ctx, p)
		if err != nil {
			logerr.WithError(logE.WithField("workflow_file", p), err).Warn("read a workflow name")
		}
		if name == "" {
			name = p
		}
		fmt.Fprintf(c.stdout, "%s - %s\n", p, name)
	}
	return nil
}

func (c *Controller) workflowName(ctx context.Context, path string) (string, error) {
	content, err := c.source.Read(ctx, path)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	wf := struct {
		Name string `yaml:"name"`
	}{}
	if err := yaml.Unmarshal(content, &wf); err != nil {
		return "", fmt.Errorf("parse the workflow as YAML: %w", err)
	}
	return wf.Name, nil
}
