// Package action parses action references as they appear in workflow files.
// A reference such as "actions/checkout@v4" is split into an identity
// (owner, name, optional subpath) and a version ref whose kind is inferred
// from its shape (tag, branch, commit SHA).
package action

import (
	"errors"
	"regexp"
	"strings"
)

// Identity identifies a reusable action. Path is set for local composite
// actions (./.github/actions/x); those have no owner, name, or remote
// versions.
type Identity struct {
	Owner string
	Name  string
	Sub   string
	Path  string
}

func (id Identity) IsLocal() bool {
	return id.Path != ""
}

func (id Identity) String() string {
	if id.IsLocal() {
		return id.Path
	}
	s := id.Owner + "/" + id.Name
	if id.Sub != "" {
		s += "/" + id.Sub
	}
	return s
}

type RefKind int

const (
	KindUnknown RefKind = iota
	KindBranch
	KindTag
	KindSHA
)

func (k RefKind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindTag:
		return "tag"
	case KindSHA:
		return "sha"
	default:
		return "unknown"
	}
}

// Ref is a version reference as it literally appears in a file.
// For tags, Prefix holds any non-numeric leading path segments
// ("release/" in "release/v1.8.8") and HasV records whether the version
// part carries a leading "v". Both are preserved when a new version is
// rendered.
type Ref struct {
	Raw    string
	Kind   RefKind
	Prefix string
	HasV   bool
}

// Version returns the numeric part of a tag ref without prefix segments
// or the leading "v" (e.g. "1.8.8" for "release/v1.8.8").
func (r Ref) Version() string {
	s := strings.TrimPrefix(r.Raw, r.Prefix)
	if r.HasV {
		s = strings.TrimPrefix(s, "v")
	}
	return s
}

var (
	shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
	tagPattern = regexp.MustCompile(`^(v?)\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z.]+)?$`)
)

// ParseRef classifies a raw reference string. A 40-hex string is a commit
// SHA, a semver-like string (optionally behind path segments such as
// "release/") is a tag, and anything else is treated as a branch.
func ParseRef(raw string) Ref {
	if raw == "" {
		return Ref{Raw: raw, Kind: KindUnknown}
	}
	if shaPattern.MatchString(raw) {
		return Ref{Raw: raw, Kind: KindSHA}
	}
	core := raw
	prefix := ""
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		prefix = raw[:i+1]
		core = raw[i+1:]
	}
	if m := tagPattern.FindStringSubmatch(core); m != nil {
		return Ref{
			Raw:    raw,
			Kind:   KindTag,
			Prefix: prefix,
			HasV:   m[1] == "v",
		}
	}
	return Ref{Raw: raw, Kind: KindBranch}
}

// Reference is a parsed uses: value.
type Reference struct {
	Identity Identity
	Ref      Ref
}

var ErrMalformedReference = errors.New("malformed action reference")

// ParseUses parses the literal value of a uses: field. The identity and the
// ref are separated by the last "@"; a value without "@" pins the default
// branch and gets an unknown ref kind. Local composite actions ("./...")
// keep the whole value as Identity.Path.
func ParseUses(uses string) (*Reference, error) {
	uses = strings.TrimSpace(uses)
	if uses == "" {
		return nil, ErrMalformedReference
	}
	if strings.HasPrefix(uses, "./") {
		return &Reference{
			Identity: Identity{Path: uses},
			Ref:      Ref{Kind: KindUnknown},
		}, nil
	}
	name := uses
	ref := Ref{Kind: KindUnknown}
	if i := strings.LastIndex(uses, "@"); i >= 0 {
		name = uses[:i]
		ref = ParseRef(uses[i+1:])
	}
	if name == "" {
		return nil, ErrMalformedReference
	}
	parts := strings.Split(name, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" || strings.Contains(parts[0], ":") {
		// docker:// images and bare names aren't action repositories.
		return nil, ErrMalformedReference
	}
	id := Identity{
		Owner: parts[0],
		Name:  parts[1],
	}
	if len(parts) > 2 {
		id.Sub = strings.Join(parts[2:], "/")
	}
	return &Reference{Identity: id, Ref: ref}, nil
}
