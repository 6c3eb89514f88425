package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gha-cli/gha-cli/pkg/github"
	"github.com/gha-cli/gha-cli/pkg/source"
)

// fakeContents implements the contents API over an in-memory file map.
type fakeContents struct {
	files   map[string]string
	commits []string
}

func (f *fakeContents) ListTags(_ context.Context, _, _ string, _ *github.ListOptions) ([]*github.RepositoryTag, *github.Response, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeContents) ListReleases(_ context.Context, _, _ string, _ *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeContents) GetContents(_ context.Context, _, _, path string, _ *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	if content, ok := f.files[path]; ok {
		return &github.RepositoryContent{
			Type:    github.Ptr("file"),
			Path:    github.Ptr(path),
			Content: github.Ptr(content),
			SHA:     github.Ptr("blobsha"),
		}, nil, nil, nil
	}
	var dir []*github.RepositoryContent
	for p := range f.files {
		if strings.HasPrefix(p, path+"/") {
			dir = append(dir, &github.RepositoryContent{
				Type: github.Ptr("file"),
				Path: github.Ptr(p),
			})
		}
	}
	if len(dir) == 0 {
		return nil, nil, nil, errors.New("not found")
	}
	return nil, dir, nil, nil
}

func (f *fakeContents) UpdateFile(_ context.Context, _, _, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	f.files[path] = string(opts.Content)
	f.commits = append(f.commits, opts.GetMessage())
	return nil, nil, nil
}

func TestRepository(t *testing.T) {
	t.Parallel()
	fake := &fakeContents{
		files: map[string]string{
			".github/workflows/test.yaml":   "name: test\n",
			".github/workflows/notes.md":    "notes\n",
			".github/workflows/release.yml": "name: release\n",
		},
	}
	repo := source.NewRepository(fake, "foo", "bar")
	ctx := context.Background()

	files, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	exp := []string{
		".github/workflows/release.yml",
		".github/workflows/test.yaml",
	}
	if diff := cmp.Diff(exp, files); diff != "" {
		t.Fatal(diff)
	}

	content, err := repo.Read(ctx, ".github/workflows/test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "name: test\n" {
		t.Fatalf("unexpected content: %q", string(content))
	}

	if err := repo.Write(ctx, ".github/workflows/test.yaml", []byte("name: updated\n"), "chore(ci): update actions"); err != nil {
		t.Fatal(err)
	}
	if fake.files[".github/workflows/test.yaml"] != "name: updated\n" {
		t.Fatal("write didn't reach the repository")
	}
	if len(fake.commits) != 1 || fake.commits[0] != "chore(ci): update actions" {
		t.Fatalf("unexpected commits: %v", fake.commits)
	}
}
