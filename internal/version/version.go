// Package version orders package version strings the way packaging
// ecosystems rank releases: epoch, then upstream version, then
// packaging release, with pre-release suffix awareness delegated to
// hashicorp/go-version.
package version

import (
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// releaseRegex matches a trailing packaging release component (-0, -1, ...)
var releaseRegex = regexp.MustCompile(`-(\d+)$`)

// parsed holds the epoch:version-release components of a version string.
type parsed struct {
	epoch    int
	upstream string
	release  string
}

// split breaks a version string into epoch, upstream version, and
// packaging release. The release is only split off when the segment
// after the last dash is purely numeric, so pre-release suffixes like
// "-rc1" stay part of the upstream version.
func split(v string) parsed {
	p := parsed{upstream: v}

	if idx := strings.Index(p.upstream, ":"); idx != -1 {
		if epoch, err := strconv.Atoi(p.upstream[:idx]); err == nil {
			p.epoch = epoch
			p.upstream = p.upstream[idx+1:]
		}
	}

	if m := releaseRegex.FindStringSubmatch(p.upstream); m != nil {
		p.release = m[1]
		p.upstream = releaseRegex.ReplaceAllString(p.upstream, "")
	}

	return p
}

// normalize prepares a version string for go-version parsing.
// Common scrape artifacts: "v" prefixes and "_" separators.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	s = strings.ReplaceAll(s, "_", ".")
	return s
}

// Compare orders two version strings.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
// The empty string sorts below every non-empty version. Unparseable
// candidates sort below every parseable version and lexicographically
// among themselves, so the order stays total and transitive.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	pa := split(a)
	pb := split(b)

	if pa.epoch != pb.epoch {
		if pa.epoch < pb.epoch {
			return -1
		}
		return 1
	}

	// Parseability is a tier of the order: a parseable version always
	// outranks an unparseable candidate, and lexicographic comparison
	// only applies within the unparseable tier. Mixing the two orders
	// across tiers would break transitivity.
	va, errA := goversion.NewVersion(normalize(pa.upstream))
	vb, errB := goversion.NewVersion(normalize(pb.upstream))
	switch {
	case errA == nil && errB == nil:
		if cmp := va.Compare(vb); cmp != 0 {
			return cmp
		}
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	default:
		if cmp := strings.Compare(normalize(pa.upstream), normalize(pb.upstream)); cmp != 0 {
			return cmp
		}
	}

	return compareRelease(pa.release, pb.release)
}

// compareRelease orders packaging release components numerically.
// A missing release sorts below any explicit release.
func compareRelease(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	ra, errA := strconv.Atoi(a)
	rb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		if ra < rb {
			return -1
		}
		if ra > rb {
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// Max returns the greatest version among candidates, with ties keeping
// the first-seen candidate. Returns "" for an empty candidate list.
func Max(candidates []string) string {
	best := ""
	for _, c := range candidates {
		if Compare(c, best) > 0 {
			best = c
		}
	}
	return best
}

// WithRelease appends a "-0" packaging release so scraped upstream
// versions compare consistently against repo versions, which always
// carry a release component.
func WithRelease(v string) string {
	if v == "" {
		return ""
	}
	return v + "-0"
}

// StripRelease removes a trailing packaging release component for
// display ("1.4.0-1" renders as "1.4.0").
func StripRelease(v string) string {
	return releaseRegex.ReplaceAllString(v, "")
}
