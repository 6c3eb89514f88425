package update

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"

	"github.com/gha-cli/gha-cli/pkg/action"
	"github.com/gha-cli/gha-cli/pkg/github"
	"github.com/gha-cli/gha-cli/pkg/version"
)

const (
	perPage  = 100
	maxPages = 3
)

// catalog returns the release catalog for an action identity, fetching it
// at most once per run. An unknown action or a provider failure degrades
// to an empty catalog so the affected usages are reported as unresolvable
// instead of aborting the run. A rate-limit or authentication error is
// remembered and stops all further lookups; nil is returned in that case.
func (c *Controller) catalog(ctx context.Context, logE *logrus.Entry, id action.Identity) *version.Catalog {
	key := id.Owner + "/" + id.Name
	if cat, ok := c.catalogs[key]; ok {
		return cat
	}
	if c.fatal != nil {
		return nil
	}
	tags, err := c.fetchTags(ctx, id)
	if err != nil {
		if github.IsFatal(err) {
			c.fatal = err
			return nil
		}
		if !github.IsNotFound(err) {
			logerr.WithError(logE.WithField("action", key), err).Warn("list releases")
		}
		tags = nil
	}
	cat := version.NewCatalog(tags, c.param.IncludePrerelease)
	c.catalogs[key] = cat
	return cat
}

// fetchTags lists release tag names for a repository, falling back to
// plain git tags when the repository publishes no releases.
func (c *Controller) fetchTags(ctx context.Context, id action.Identity) ([]string, error) {
	tags := []string{}
	opts := &github.ListOptions{PerPage: perPage}
	for range maxPages {
		releases, resp, err := c.repos.ListReleases(ctx, id.Owner, id.Name, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		for _, release := range releases {
			if release.GetDraft() {
				continue
			}
			tags = append(tags, release.GetTagName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if len(tags) > 0 {
		return tags, nil
	}

	opts = &github.ListOptions{PerPage: perPage}
	for range maxPages {
		repoTags, resp, err := c.repos.ListTags(ctx, id.Owner, id.Name, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		for _, tag := range repoTags {
			tags = append(tags, tag.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}
