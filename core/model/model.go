// Package model defines the shared domain types for number generation.
package model

import (
	"strings"

	"phonegen/internal/errors"
)

// Operator codes as stored in the lookup table.
const (
	OperatorChinaMobile  = 1
	OperatorChinaUnicom  = 2
	OperatorChinaTelecom = 3
	OperatorVirtualMVNO  = 4
	OperatorBroadcast    = 5
)

// SuffixTokenAll marks a filter with no exact suffix in artifact names.
const SuffixTokenAll = "ALL"

// SegmentRecord is one (prefix, region code) combination serviced by one
// operator in one city, as resolved by the lookup store.
type SegmentRecord struct {
	// Prefix is the leading 3-digit block
	Prefix string `json:"prefix"`

	// Suffix is the 4-digit region code block
	Suffix string `json:"suffix"`

	// Province is the administrative region
	Province string `json:"province"`

	// City is the city within the province
	City string `json:"city"`

	// Operator is the carrier code (1-5)
	Operator int `json:"operator"`
}

// FilterSpec describes one generation request.
type FilterSpec struct {
	// Prefix is the required leading 3-digit block
	Prefix string `json:"prefix"`

	// ExactSuffix4 pins the trailing 4 digits (mutually exclusive with ExactSuffix3)
	ExactSuffix4 string `json:"suffix_4,omitempty"`

	// ExactSuffix3 pins the trailing 3 digits (mutually exclusive with ExactSuffix4)
	ExactSuffix3 string `json:"suffix_3,omitempty"`

	// Province is the required administrative region
	Province string `json:"province"`

	// City is the required city
	City string `json:"city"`

	// Operators restricts matched segments by carrier code; empty means all
	Operators []int `json:"operators,omitempty"`

	// MaxCount is the post-dedup generation ceiling
	MaxCount int `json:"-"`
}

// Validate enforces the filter invariants before the engine runs.
func (f *FilterSpec) Validate() error {
	f.Prefix = strings.TrimSpace(f.Prefix)
	f.ExactSuffix4 = strings.TrimSpace(f.ExactSuffix4)
	f.ExactSuffix3 = strings.TrimSpace(f.ExactSuffix3)
	f.Province = strings.TrimSpace(f.Province)
	f.City = strings.TrimSpace(f.City)

	if f.Prefix == "" {
		return errors.InvalidFilter("prefix is required")
	}
	if !isDigits(f.Prefix, 3) {
		return errors.InvalidFilter("prefix must be exactly 3 digits")
	}
	if f.Province == "" {
		return errors.InvalidFilter("province is required")
	}
	if f.City == "" {
		return errors.InvalidFilter("city is required")
	}
	if f.ExactSuffix4 != "" && f.ExactSuffix3 != "" {
		return errors.InvalidFilter("suffix_4 and suffix_3 are mutually exclusive")
	}
	if f.ExactSuffix4 != "" && !isDigits(f.ExactSuffix4, 4) {
		return errors.InvalidFilter("suffix_4 must be exactly 4 digits")
	}
	if f.ExactSuffix3 != "" && !isDigits(f.ExactSuffix3, 3) {
		return errors.InvalidFilter("suffix_3 must be exactly 3 digits")
	}
	for _, op := range f.Operators {
		if op < OperatorChinaMobile || op > OperatorBroadcast {
			return errors.Newf(errors.TypeInvalidFilter, "invalid operator code: %d", op)
		}
	}
	return nil
}

// SuffixToken returns the filter's suffix component for artifact names.
func (f *FilterSpec) SuffixToken() string {
	switch {
	case f.ExactSuffix4 != "":
		return f.ExactSuffix4
	case f.ExactSuffix3 != "":
		return f.ExactSuffix3
	}
	return SuffixTokenAll
}

func isDigits(s string, width int) bool {
	if len(s) != width {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
