package orgs

import (
	"encoding/csv"
	"fmt"
	"strconv"
)

var (
	orgHeader = []string{
		"name", "members_count", "teams_count", "repositories_count",
	}
	repoHeader = []string{
		"name", "is_private", "is_archived", "branches_count",
		"collaborators_count", "is_active", "has_issues",
		"has_pull_requests", "size", "large_repo", "is_template",
		"forks_count",
	}
)

// render prints the organization table first, then one repository table
// per organization that has any repositories. Nothing is printed when no
// organization was analyzed.
func (c *Controller) render(rows []*orgRow) error {
	if len(rows) == 0 {
		return nil
	}
	records := [][]string{orgHeader}
	for _, org := range rows {
		records = append(records, org.record())
	}
	for _, org := range rows {
		if len(org.Repositories) == 0 {
			continue
		}
		records = append(records, repoHeader)
		for _, repo := range org.Repositories {
			records = append(records, repo.record())
		}
	}
	w := csv.NewWriter(c.stdout)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write the inventory as CSV: %w", err)
	}
	return nil
}

func (o *orgRow) record() []string {
	return []string{
		o.Name,
		strconv.Itoa(o.MembersCount),
		strconv.Itoa(o.TeamsCount),
		strconv.Itoa(len(o.Repositories)),
	}
}

func (r *repoRow) record() []string {
	return []string{
		r.Name,
		strconv.FormatBool(r.IsPrivate),
		strconv.FormatBool(r.IsArchived),
		strconv.Itoa(r.BranchesCount),
		strconv.Itoa(r.CollaboratorsCount),
		strconv.FormatBool(r.IsActive),
		strconv.FormatBool(r.HasIssues),
		strconv.FormatBool(r.HasPullRequests),
		strconv.Itoa(r.Size),
		strconv.FormatBool(r.LargeRepo),
		strconv.FormatBool(r.IsTemplate),
		strconv.Itoa(r.ForksCount),
	}
}
