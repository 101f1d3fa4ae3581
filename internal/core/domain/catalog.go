// Package domain contains the core domain models for the lab matrix: the
// catalog of distributions and build variants, the record templates, and the
// generated document.
package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// DistributionName identifies a target OS image, e.g. "centos7".
type DistributionName string

// BuildVariant identifies a source branch or ref to build, e.g. "master".
type BuildVariant string

// MaxRecordsPerRole bounds each role group so that labels stay two digits wide.
// Past it the host of ta10 (ta1001) would start with the label ta100.
const MaxRecordsPerRole = 99

// Catalog is the ordered input of a generation pass.
type Catalog struct {
	Distributions []DistributionName
	Variants      []BuildVariant
	Profile       Profile
}

// DefaultDistributions returns the built-in distribution catalog.
func DefaultDistributions() []DistributionName {
	return []DistributionName{
		"centos6",
		"centos7",
		"centos8",
		"debian10",
		"debian9",
		"fedora31",
		"opensuse15",
		"ubuntu1804",
	}
}

// DefaultVariants returns the built-in build variants.
func DefaultVariants() []BuildVariant {
	return []BuildVariant{
		"master",
		"openafs-stable-1_8_x",
	}
}

// DefaultCatalog returns the compiled-in catalog used when no catalog file is given.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Distributions: DefaultDistributions(),
		Variants:      DefaultVariants(),
		Profile:       DefaultProfile(),
	}
}

// Validate checks that the catalog can produce a well-formed document.
func (c *Catalog) Validate() error {
	if len(c.Distributions) == 0 {
		return newConfigurationError(ErrEmptyCatalog, "distributions", "")
	}

	seen := make(map[DistributionName]struct{}, len(c.Distributions))
	for _, d := range c.Distributions {
		if !validName(string(d)) {
			return newConfigurationError(ErrInvalidName, "distributions", string(d))
		}
		if _, dup := seen[d]; dup {
			return newConfigurationError(ErrDuplicateDistribution, "distributions", string(d))
		}
		seen[d] = struct{}{}
	}

	seenVariants := make(map[BuildVariant]struct{}, len(c.Variants))
	for _, v := range c.Variants {
		if !validName(string(v)) {
			return newConfigurationError(ErrInvalidName, "variants", string(v))
		}
		if _, dup := seenVariants[v]; dup {
			return newConfigurationError(ErrDuplicateVariant, "variants", string(v))
		}
		seenVariants[v] = struct{}{}
	}

	if len(c.Distributions) > MaxRecordsPerRole {
		return newConfigurationError(ErrTooManyRecords, "distributions", strconv.Itoa(len(c.Distributions)))
	}
	if n := len(c.Distributions) * len(c.Variants); n > MaxRecordsPerRole {
		return newConfigurationError(ErrTooManyRecords, "variants", strconv.Itoa(n))
	}

	return c.Profile.Validate()
}

// RecordCount returns the number of records a generation pass will emit.
func (c *Catalog) RecordCount() int {
	return len(c.Distributions) * (1 + len(c.Variants))
}

// validName rejects names that would break a section header or a value line.
func validName(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '[' || r == ']'
	})
}

// ParseDistributions converts raw strings into distribution names.
func ParseDistributions(names []string) []DistributionName {
	res := make([]DistributionName, len(names))
	for i, n := range names {
		res[i] = DistributionName(strings.TrimSpace(n))
	}
	return res
}

// ParseVariants converts raw strings into build variants.
func ParseVariants(names []string) []BuildVariant {
	res := make([]BuildVariant, len(names))
	for i, n := range names {
		res[i] = BuildVariant(strings.TrimSpace(n))
	}
	return res
}
