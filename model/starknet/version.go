package starknet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/coreos/go-semver/semver"
)

// ProtocolVersion is a Starknet protocol version. Starknet versions carry up
// to four numeric components ("0.13.1.1"); the first three are ordered with
// semver semantics and the fourth breaks ties. Blocks produced before 0.7.0
// carry no version at all, which is represented by the zero value and orders
// as 0.0.0.
type ProtocolVersion struct {
	raw      string
	version  semver.Version
	revision uint64
}

// ParseProtocolVersion parses a Starknet version string. The empty string is
// accepted and yields the zero version.
func ParseProtocolVersion(s string) (ProtocolVersion, error) {
	if s == "" {
		return ProtocolVersion{}, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return ProtocolVersion{}, fmt.Errorf("protocol version %q has more than four components", s)
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 64); err != nil {
			return ProtocolVersion{}, fmt.Errorf("protocol version %q has non-numeric component %q", s, p)
		}
	}

	var revision uint64
	if len(parts) == 4 {
		revision, _ = strconv.ParseUint(parts[3], 10, 64)
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return ProtocolVersion{}, fmt.Errorf("invalid protocol version %q: %w", s, err)
	}

	return ProtocolVersion{
		raw:      s,
		version:  *v,
		revision: revision,
	}, nil
}

// MustParseProtocolVersion is like ParseProtocolVersion but panics on
// malformed input. Intended for protocol tables and tests.
func MustParseProtocolVersion(s string) ProtocolVersion {
	v, err := ParseProtocolVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or 1 depending on whether v orders before, equal to,
// or after other.
func (v ProtocolVersion) Compare(other ProtocolVersion) int {
	if c := v.version.Compare(other.version); c != 0 {
		return c
	}
	switch {
	case v.revision < other.revision:
		return -1
	case v.revision > other.revision:
		return 1
	}
	return 0
}

func (v ProtocolVersion) LessThan(other ProtocolVersion) bool {
	return v.Compare(other) < 0
}

// IsZero reports whether v is the version-less (pre 0.7.0) version.
func (v ProtocolVersion) IsZero() bool {
	return v.Compare(ProtocolVersion{}) == 0
}

// String returns the version exactly as it was parsed.
func (v ProtocolVersion) String() string {
	return v.raw
}

// Felt encodes the raw version string as a short string felt, the form in
// which the version enters post 0.13.2 block hashes.
func (v ProtocolVersion) Felt() felt.Felt {
	var f felt.Felt
	f.SetBytes([]byte(v.raw))
	return f
}

// VersionRange is the half-open range [Since, Until) of protocol versions. A
// nil Until leaves the range open towards newer versions.
type VersionRange struct {
	Since ProtocolVersion
	Until *ProtocolVersion
}

// VersionsFrom returns the range [since, until). An empty until leaves the
// range open. Malformed versions panic; ranges are protocol constants.
func VersionsFrom(since, until string) VersionRange {
	r := VersionRange{Since: MustParseProtocolVersion(since)}
	if until != "" {
		u := MustParseProtocolVersion(until)
		r.Until = &u
	}
	return r
}

// Contains reports whether v lies in the range.
func (r VersionRange) Contains(v ProtocolVersion) bool {
	if v.LessThan(r.Since) {
		return false
	}
	return r.Until == nil || v.LessThan(*r.Until)
}

func (r VersionRange) String() string {
	until := "∞"
	if r.Until != nil {
		until = r.Until.String()
	}
	since := r.Since.String()
	if since == "" {
		since = "0.0.0"
	}
	return fmt.Sprintf("[%s, %s)", since, until)
}

// CheckVersionRanges verifies that the ranges are non-empty, ordered and
// pairwise disjoint, with only the last one left open.
func CheckVersionRanges(ranges []VersionRange) error {
	for i, r := range ranges {
		if r.Until != nil && !r.Since.LessThan(*r.Until) {
			return fmt.Errorf("range %d %s is empty", i, r)
		}
		if r.Until == nil && i != len(ranges)-1 {
			return fmt.Errorf("range %d %s is open but not the last one", i, r)
		}
		if i > 0 && r.Since.LessThan(*ranges[i-1].Until) {
			return fmt.Errorf("range %d %s overlaps range %d %s", i, r, i-1, ranges[i-1])
		}
	}
	return nil
}
