// Package version decides whether an action reference is outdated relative
// to the set of published releases for that action. Precedence ordering is
// delegated to hashicorp/go-version; rendering preserves the style of the
// reference being replaced (leading "v", path prefixes such as "release/").
package version

import (
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/gha-cli/gha-cli/pkg/action"
)

// Policy selects how a current reference is compared against the catalog.
type Policy int

const (
	// PolicyMajorOnly treats a pin as satisfied once its major component
	// matches the latest release's major. A floating major tag like "v2"
	// resolves to the newest compatible release at execution time, so a
	// newer minor or patch doesn't warrant an update.
	PolicyMajorOnly Policy = iota
	// PolicyExact requires the pin to match the highest known release.
	PolicyExact
)

func (p Policy) String() string {
	if p == PolicyExact {
		return "exact"
	}
	return "major-only"
}

type entry struct {
	ref action.Ref
	v   *goversion.Version
}

// Catalog is the ordered set of known release tags for one action,
// highest precedence first. It is immutable once built.
type Catalog struct {
	entries []entry
}

// NewCatalog normalizes raw tag names into a catalog. Tags that don't parse
// as a version shape are discarded. Pre-release tags are discarded unless
// includePrerelease is set; even then they are only chosen as an upgrade
// target when no stable release exists.
func NewCatalog(tags []string, includePrerelease bool) *Catalog {
	entries := make([]entry, 0, len(tags))
	for _, tag := range tags {
		r := action.ParseRef(tag)
		if r.Kind != action.KindTag {
			continue
		}
		v, err := goversion.NewVersion(r.Version())
		if err != nil {
			continue
		}
		if v.Prerelease() != "" && !includePrerelease {
			continue
		}
		entries = append(entries, entry{ref: r, v: v})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].v.GreaterThan(entries[j].v)
	})
	return &Catalog{entries: entries}
}

func (c *Catalog) Empty() bool {
	return c == nil || len(c.entries) == 0
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Refs returns the catalog members, highest precedence first.
func (c *Catalog) Refs() []action.Ref {
	refs := make([]action.Ref, len(c.entries))
	for i, e := range c.entries {
		refs[i] = e.ref
	}
	return refs
}

// Latest returns the highest-precedence release. Stable releases always win
// over pre-releases regardless of precedence.
func (c *Catalog) Latest() (action.Ref, bool) {
	if c.Empty() {
		return action.Ref{}, false
	}
	for _, e := range c.entries {
		if e.v.Prerelease() == "" {
			return e.ref, true
		}
	}
	return c.entries[0].ref, true
}

// Reason explains an update decision.
type Reason int

const (
	UpToDate Reason = iota
	MajorBump
	ExactBump
	Unresolvable
)

func (r Reason) String() string {
	switch r {
	case MajorBump:
		return "major bump"
	case ExactBump:
		return "exact bump"
	case Unresolvable:
		return "unresolvable"
	default:
		return "up to date"
	}
}

// Decision is the outcome of comparing one reference against a catalog.
// Target is a catalog member and is nil unless an update is warranted;
// Rendered is Target expressed in the current reference's style.
type Decision struct {
	Current  action.Ref
	Target   *action.Ref
	Rendered string
	Reason   Reason
}

// Decide compares a current reference against the catalog under a policy.
// Branches and commit SHAs are never auto-compared: a SHA pin is assumed
// intentional and a branch has no fixed version.
func Decide(current action.Ref, catalog *Catalog, policy Policy) Decision {
	if current.Kind != action.KindTag {
		return Decision{Current: current, Reason: Unresolvable}
	}
	latest, ok := catalog.Latest()
	if !ok {
		return Decision{Current: current, Reason: Unresolvable}
	}
	cv, err := goversion.NewVersion(current.Version())
	if err != nil {
		return Decision{Current: current, Reason: Unresolvable}
	}
	lv, err := goversion.NewVersion(latest.Version())
	if err != nil {
		return Decision{Current: current, Reason: Unresolvable}
	}

	switch policy {
	case PolicyExact:
		if cv.Equal(lv) {
			return Decision{Current: current, Reason: UpToDate}
		}
		return Decision{
			Current:  current,
			Target:   &latest,
			Rendered: render(current, latest),
			Reason:   ExactBump,
		}
	default:
		if lv.Segments()[0] > cv.Segments()[0] {
			return Decision{
				Current:  current,
				Target:   &latest,
				Rendered: render(current, latest),
				Reason:   MajorBump,
			}
		}
		return Decision{Current: current, Reason: UpToDate}
	}
}

// render expresses the target in the current reference's style: the
// current prefix segment and "v" usage are kept verbatim, only the version
// suffix comes from the target (release/v1 + v1.8.8 -> release/v1.8.8).
func render(current, target action.Ref) string {
	s := current.Prefix
	if current.HasV {
		s += "v"
	}
	return s + target.Version()
}
