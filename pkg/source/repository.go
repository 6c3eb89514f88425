package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gha-cli/gha-cli/pkg/github"
)

// Repository reads and writes workflow files in a remote GitHub repository
// through the contents API. Writes create a commit on the default branch.
type Repository struct {
	repos github.RepositoriesService
	owner string
	name  string
}

func NewRepository(repos github.RepositoriesService, owner, name string) *Repository {
	return &Repository{repos: repos, owner: owner, name: name}
}

func (r *Repository) List(ctx context.Context) ([]string, error) {
	_, dir, _, err := r.repos.GetContents(ctx, r.owner, r.name, ".github/workflows", nil)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list workflow files in %s/%s: %w", r.owner, r.name, err)
	}
	files := []string{}
	for _, c := range dir {
		if c.GetType() != "file" {
			continue
		}
		p := c.GetPath()
		if strings.HasSuffix(p, ".yml") || strings.HasSuffix(p, ".yaml") {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *Repository) Read(ctx context.Context, path string) ([]byte, error) {
	file, _, _, err := r.repos.GetContents(ctx, r.owner, r.name, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get contents of %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("get contents of %s: not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode contents of %s: %w", path, err)
	}
	return []byte(content), nil
}

func (r *Repository) Write(ctx context.Context, path string, content []byte, message string) error {
	file, _, _, err := r.repos.GetContents(ctx, r.owner, r.name, path, nil)
	if err != nil {
		return fmt.Errorf("get the current blob SHA of %s: %w", path, err)
	}
	if file == nil {
		return fmt.Errorf("get the current blob SHA of %s: not a file", path)
	}
	_, _, err = r.repos.UpdateFile(ctx, r.owner, r.name, path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		SHA:     github.Ptr(file.GetSHA()),
	})
	if err != nil {
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}

// ParseRepo splits OWNER/NAME remote coordinates.
func ParseRepo(repo string) (string, string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be a local directory or OWNER/NAME: %s", repo)
	}
	return parts[0], parts[1], nil
}
