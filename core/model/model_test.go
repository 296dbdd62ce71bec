package model

import (
	"testing"

	"phonegen/internal/errors"
)

func validFilter() FilterSpec {
	return FilterSpec{
		Prefix:   "138",
		Province: "广东",
		City:     "深圳",
	}
}

func TestFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FilterSpec)
		wantErr bool
	}{
		{"valid minimal", func(f *FilterSpec) {}, false},
		{"valid exact4", func(f *FilterSpec) { f.ExactSuffix4 = "1234" }, false},
		{"valid exact3", func(f *FilterSpec) { f.ExactSuffix3 = "567" }, false},
		{"valid operators", func(f *FilterSpec) { f.Operators = []int{1, 3, 5} }, false},
		{"trims whitespace", func(f *FilterSpec) { f.Prefix = " 138 " }, false},
		{"missing prefix", func(f *FilterSpec) { f.Prefix = "" }, true},
		{"short prefix", func(f *FilterSpec) { f.Prefix = "13" }, true},
		{"non-digit prefix", func(f *FilterSpec) { f.Prefix = "13a" }, true},
		{"missing province", func(f *FilterSpec) { f.Province = "" }, true},
		{"missing city", func(f *FilterSpec) { f.City = "" }, true},
		{"both suffixes", func(f *FilterSpec) { f.ExactSuffix4 = "1234"; f.ExactSuffix3 = "567" }, true},
		{"bad exact4 width", func(f *FilterSpec) { f.ExactSuffix4 = "123" }, true},
		{"bad exact4 digits", func(f *FilterSpec) { f.ExactSuffix4 = "12x4" }, true},
		{"bad exact3 width", func(f *FilterSpec) { f.ExactSuffix3 = "5678" }, true},
		{"operator zero", func(f *FilterSpec) { f.Operators = []int{0} }, true},
		{"operator six", func(f *FilterSpec) { f.Operators = []int{6} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFilter()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.IsType(err, errors.TypeInvalidFilter) {
				t.Errorf("expected INVALID_FILTER, got %v", err)
			}
		})
	}
}

func TestSuffixToken(t *testing.T) {
	tests := []struct {
		name   string
		exact4 string
		exact3 string
		want   string
	}{
		{"none", "", "", "ALL"},
		{"exact4", "1234", "", "1234"},
		{"exact3", "", "567", "567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFilter()
			f.ExactSuffix4 = tt.exact4
			f.ExactSuffix3 = tt.exact3
			if got := f.SuffixToken(); got != tt.want {
				t.Errorf("SuffixToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
