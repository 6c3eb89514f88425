package action

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRef(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name string
		raw  string
		exp  Ref
	}{
		{
			name: "major tag",
			raw:  "v2",
			exp:  Ref{Raw: "v2", Kind: KindTag, HasV: true},
		},
		{
			name: "full tag without v",
			raw:  "3.5.0",
			exp:  Ref{Raw: "3.5.0", Kind: KindTag},
		},
		{
			name: "tag with path prefix",
			raw:  "release/v1",
			exp:  Ref{Raw: "release/v1", Kind: KindTag, Prefix: "release/", HasV: true},
		},
		{
			name: "prerelease tag",
			raw:  "v1.2.3-rc.1",
			exp:  Ref{Raw: "v1.2.3-rc.1", Kind: KindTag, HasV: true},
		},
		{
			name: "commit sha",
			raw:  "8e5e7e5ab8b370d6c329ec480221332ada57f0ab",
			exp:  Ref{Raw: "8e5e7e5ab8b370d6c329ec480221332ada57f0ab", Kind: KindSHA},
		},
		{
			name: "branch",
			raw:  "main",
			exp:  Ref{Raw: "main", Kind: KindBranch},
		},
		{
			name: "branch with slash",
			raw:  "release/foo",
			exp:  Ref{Raw: "release/foo", Kind: KindBranch},
		},
		{
			name: "empty",
			raw:  "",
			exp:  Ref{Kind: KindUnknown},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			ref := ParseRef(d.raw)
			if diff := cmp.Diff(d.exp, ref); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestParseUses(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name  string
		uses  string
		exp   *Reference
		isErr bool
	}{
		{
			name: "marketplace action",
			uses: "actions/checkout@v2",
			exp: &Reference{
				Identity: Identity{Owner: "actions", Name: "checkout"},
				Ref:      Ref{Raw: "v2", Kind: KindTag, HasV: true},
			},
		},
		{
			name: "action with subpath",
			uses: "github/codeql-action/init@v3",
			exp: &Reference{
				Identity: Identity{Owner: "github", Name: "codeql-action", Sub: "init"},
				Ref:      Ref{Raw: "v3", Kind: KindTag, HasV: true},
			},
		},
		{
			name: "default branch pin",
			uses: "actions/checkout",
			exp: &Reference{
				Identity: Identity{Owner: "actions", Name: "checkout"},
				Ref:      Ref{Kind: KindUnknown},
			},
		},
		{
			name: "local composite action",
			uses: "./.github/actions/setup",
			exp: &Reference{
				Identity: Identity{Path: "./.github/actions/setup"},
				Ref:      Ref{Kind: KindUnknown},
			},
		},
		{
			name: "sha pin",
			uses: "actions/checkout@8e5e7e5ab8b370d6c329ec480221332ada57f0ab",
			exp: &Reference{
				Identity: Identity{Owner: "actions", Name: "checkout"},
				Ref:      Ref{Raw: "8e5e7e5ab8b370d6c329ec480221332ada57f0ab", Kind: KindSHA},
			},
		},
		{
			name: "prefixed tag",
			uses: "foo/bar@release/v1",
			exp: &Reference{
				Identity: Identity{Owner: "foo", Name: "bar"},
				Ref:      Ref{Raw: "release/v1", Kind: KindTag, Prefix: "release/", HasV: true},
			},
		},
		{
			name:  "empty identity",
			uses:  "@v1",
			isErr: true,
		},
		{
			name:  "bare name",
			uses:  "checkout@v2",
			isErr: true,
		},
		{
			name:  "docker image",
			uses:  "docker://alpine:3.8",
			isErr: true,
		},
		{
			name:  "empty",
			uses:  "",
			isErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			ref, err := ParseUses(d.uses)
			if d.isErr {
				if !errors.Is(err, ErrMalformedReference) {
					t.Fatalf("expected ErrMalformedReference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, ref); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestRef_Version(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		raw  string
		exp  string
	}{
		{name: "v prefix", raw: "v1.8.8", exp: "1.8.8"},
		{name: "path prefix", raw: "release/v1.8.8", exp: "1.8.8"},
		{name: "no v", raw: "3.5.0", exp: "3.5.0"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if v := ParseRef(d.raw).Version(); v != d.exp {
				t.Fatalf("wanted %s, got %s", d.exp, v)
			}
		})
	}
}
