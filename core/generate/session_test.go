package generate

import (
	"context"
	"sort"
	"testing"

	"phonegen/core/model"
	"phonegen/internal/errors"
)

func seg(prefix, suffix string, operator int) model.SegmentRecord {
	return model.SegmentRecord{
		Prefix:   prefix,
		Suffix:   suffix,
		Province: "广东",
		City:     "深圳",
		Operator: operator,
	}
}

func TestGenerateEmptySegments(t *testing.T) {
	s := NewSession(Options{MaxCount: 1000})

	ids, err := s.Generate(context.Background(), model.FilterSpec{Prefix: "138"}, nil)
	if err != nil {
		t.Fatalf("expected nil error for empty segments, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty result, got %d identifiers", len(ids))
	}
}

func TestGenerateOrderingAndDedup(t *testing.T) {
	s := NewSession(Options{MaxCount: 100000, Workers: 4})

	// Two records sharing a region code (different operators) plus a
	// distinct one: the shared base must expand once, not twice.
	segments := []model.SegmentRecord{
		seg("138", "0755", 1),
		seg("138", "0755", 2),
		seg("138", "0010", 1),
	}

	ids, err := s.Generate(context.Background(), model.FilterSpec{Prefix: "138"}, segments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(ids) != 20000 {
		t.Fatalf("expected 20000 identifiers after dedup, got %d", len(ids))
	}
	if !sort.StringsAreSorted(ids) {
		t.Fatal("output is not in ascending order")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			t.Fatalf("duplicate identifier %q", ids[i])
		}
	}
	if ids[0] != "13800100000" {
		t.Errorf("first identifier = %q, want 13800100000", ids[0])
	}
	if ids[len(ids)-1] != "13807559999" {
		t.Errorf("last identifier = %q, want 13807559999", ids[len(ids)-1])
	}
}

func TestGenerateDeterministic(t *testing.T) {
	s := NewSession(Options{MaxCount: 100000, Workers: 8})
	segments := []model.SegmentRecord{
		seg("139", "1234", 1),
		seg("139", "0001", 1),
		seg("139", "9999", 3),
	}
	filter := model.FilterSpec{Prefix: "139", ExactSuffix3: "888"}

	first, err := s.Generate(context.Background(), filter, segments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := s.Generate(context.Background(), filter, segments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("non-deterministic cardinality: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic output at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestGenerateExactSuffix(t *testing.T) {
	s := NewSession(Options{MaxCount: 1000})
	segments := []model.SegmentRecord{seg("138", "0755", 1)}

	ids, err := s.Generate(context.Background(), model.FilterSpec{Prefix: "138", ExactSuffix4: "1234"}, segments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(ids) != 1 || ids[0] != "13807551234" {
		t.Fatalf("expected single identifier 13807551234, got %v", ids)
	}
}

func TestGenerateOverCapacity(t *testing.T) {
	s := NewSession(Options{MaxCount: 5000})
	segments := []model.SegmentRecord{seg("138", "0755", 1)}

	_, err := s.Generate(context.Background(), model.FilterSpec{Prefix: "138"}, segments)
	if err == nil {
		t.Fatal("expected over-capacity error")
	}
	if !errors.IsType(err, errors.TypeOverCapacity) {
		t.Fatalf("expected OVER_CAPACITY, got %v", err)
	}
}

func TestGenerateCapacityCheckedPostDedup(t *testing.T) {
	// 10000 post-dedup fits the limit even though naive pre-dedup
	// accumulation would count 20000.
	s := NewSession(Options{MaxCount: 10000})
	segments := []model.SegmentRecord{
		seg("138", "0755", 1),
		seg("138", "0755", 2),
	}

	ids, err := s.Generate(context.Background(), model.FilterSpec{Prefix: "138"}, segments)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(ids) != 10000 {
		t.Fatalf("expected 10000 identifiers, got %d", len(ids))
	}
}

func TestGenerateCancellation(t *testing.T) {
	s := NewSession(Options{MaxCount: 0, Workers: 1})

	var segments []model.SegmentRecord
	for i := 0; i < 500; i++ {
		segments = append(segments, seg("138", fmtSuffix(i), 1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Generate(ctx, model.FilterSpec{Prefix: "138"}, segments); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func fmtSuffix(i int) string {
	digits := []byte{'0', '0', '0', '0'}
	for p := 3; p >= 0 && i > 0; p-- {
		digits[p] = byte('0' + i%10)
		i /= 10
	}
	return string(digits)
}
