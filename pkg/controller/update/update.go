package update

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/gha-cli/gha-cli/pkg/version"
	"github.com/gha-cli/gha-cli/pkg/workflow"
)

// Entry pairs one scanned usage with its update decision.
type Entry struct {
	Usage    *workflow.Usage
	Decision version.Decision
	Ignored  bool
}

// FileResult holds the decisions for one workflow file along with the raw
// content the spans were recorded against.
type FileResult struct {
	Path    string
	Content []byte
	Entries []*Entry
}

// Run executes the pipeline across all workflow files. Finding updates is
// not an error: the report is printed and nil is returned. An error is
// returned only when no file could be processed at all.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	files, err := c.listFiles(ctx)
	if err != nil {
		return fmt.Errorf("list workflow files: %w", err)
	}
	if len(files) == 0 {
		logE.Warn("no workflow files found")
		return nil
	}
	results := make([]*FileResult, 0, len(files))
	for _, p := range files {
		res, err := c.checkFile(ctx, logE.WithField("workflow_file", p), p)
		if err != nil {
			logerr.WithError(logE.WithField("workflow_file", p), err).Error("check a workflow file")
			continue
		}
		results = append(results, res)
	}
	c.render(results)
	if c.fatal != nil {
		logerr.WithError(logE, c.fatal).Error("catalog lookups were aborted; some actions couldn't be resolved")
	}
	if len(results) == 0 {
		return errors.New("no workflow file could be processed")
	}
	if !c.param.Apply {
		return nil
	}
	return c.apply(ctx, logE, results)
}

func (c *Controller) listFiles(ctx context.Context) ([]string, error) {
	if len(c.param.WorkflowFilePaths) != 0 {
		return c.param.WorkflowFilePaths, nil
	}
	files, err := c.source.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if len(c.cfg.Files) == 0 {
		return files, nil
	}
	// config file patterns narrow the listed set
	filtered := []string{}
	for _, f := range files {
		for _, cf := range c.cfg.Files {
			if matched, _ := path.Match(cf.Pattern, filepath.ToSlash(f)); matched {
				filtered = append(filtered, f)
				break
			}
			if matched, _ := path.Match(cf.Pattern, filepath.Base(f)); matched {
				filtered = append(filtered, f)
				break
			}
		}
	}
	return filtered, nil
}

func (c *Controller) checkFile(ctx context.Context, logE *logrus.Entry, filePath string) (*FileResult, error) {
	content, err := c.source.Read(ctx, filePath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	usages, err := workflow.Scan(content)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	res := &FileResult{Path: filePath, Content: content}
	for _, u := range usages {
		res.Entries = append(res.Entries, c.decide(ctx, logE, u))
	}
	return res, nil
}

func (c *Controller) decide(ctx context.Context, logE *logrus.Entry, u *workflow.Usage) *Entry {
	e := &Entry{Usage: u}
	switch {
	case u.Err != nil:
		logerr.WithError(logE.WithFields(logrus.Fields{
			"line": u.Line,
			"uses": u.Raw,
		}), u.Err).Warn("parse an action reference")
		e.Decision = version.Decision{Reason: version.Unresolvable}
	case u.Reference.Identity.IsLocal():
		// Local composite actions have no remote versions.
		e.Decision = version.Decision{Current: u.Reference.Ref, Reason: version.UpToDate}
	case c.cfg.Ignored(u.Reference.Identity.String(), u.Reference.Ref.Raw):
		logE.WithField("action", u.Reference.Identity.String()).Debug("ignore the action")
		e.Ignored = true
		e.Decision = version.Decision{Current: u.Reference.Ref, Reason: version.UpToDate}
	default:
		cat := c.catalog(ctx, logE, u.Reference.Identity)
		if cat == nil {
			e.Decision = version.Decision{Current: u.Reference.Ref, Reason: version.Unresolvable}
			break
		}
		e.Decision = version.Decide(u.Reference.Ref, cat, c.param.Policy)
	}
	return e
}

// apply rewrites each file at the recorded spans and persists it through
// the file source. A stale span skips that single occurrence; a write
// failure skips that file.
func (c *Controller) apply(ctx context.Context, logE *logrus.Entry, results []*FileResult) error {
	for _, res := range results {
		logE := logE.WithField("workflow_file", res.Path)
		edits := make([]workflow.Edit, 0, len(res.Entries))
		for _, e := range res.Entries {
			if e.Decision.Target == nil {
				continue
			}
			edits = append(edits, workflow.Edit{
				Span: e.Usage.Span,
				Old:  e.Usage.Raw,
				New:  e.Usage.Reference.Identity.String() + "@" + e.Decision.Rendered,
			})
		}
		if len(edits) == 0 {
			continue
		}
		newContent, applied, stale := workflow.Apply(res.Content, edits)
		for _, s := range stale {
			logerr.WithError(logE.WithField("uses", s.Old), workflow.ErrStaleSpan).Warn("skip an occurrence")
		}
		if applied == 0 {
			continue
		}
		if err := c.source.Write(ctx, res.Path, newContent, c.param.CommitMessage); err != nil {
			logerr.WithError(logE, err).Error("write a workflow file")
			continue
		}
		logE.WithField("updated_actions", applied).Info("updated a workflow file")
	}
	return nil
}
