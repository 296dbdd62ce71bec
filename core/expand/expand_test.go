package expand

import (
	"strings"
	"testing"

	"phonegen/core/model"
)

var segment = model.SegmentRecord{
	Prefix:   "138",
	Suffix:   "0755",
	Province: "广东",
	City:     "深圳",
	Operator: 1,
}

func collect(t *testing.T, exact4, exact3 string) []string {
	t.Helper()
	var out []string
	for id := range Expand(segment, exact4, exact3) {
		out = append(out, id)
	}
	return out
}

func TestExpandFull(t *testing.T) {
	ids := collect(t, "", "")

	if len(ids) != 10000 {
		t.Fatalf("expected 10000 identifiers, got %d", len(ids))
	}

	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if len(id) != 11 {
			t.Fatalf("identifier %q is not 11 digits", id)
		}
		if !strings.HasPrefix(id, "1380755") {
			t.Fatalf("identifier %q does not share the segment base", id)
		}
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
		if i > 0 && ids[i-1] >= id {
			t.Fatalf("sequence not ascending at %d: %q >= %q", i, ids[i-1], id)
		}
	}

	if ids[0] != "13807550000" {
		t.Errorf("first identifier = %q, want 13807550000", ids[0])
	}
	if ids[len(ids)-1] != "13807559999" {
		t.Errorf("last identifier = %q, want 13807559999", ids[len(ids)-1])
	}
}

func TestExpandExact4(t *testing.T) {
	ids := collect(t, "1234", "")

	if len(ids) != 1 {
		t.Fatalf("expected 1 identifier, got %d", len(ids))
	}
	if ids[0] != "13807551234" {
		t.Errorf("identifier = %q, want 13807551234", ids[0])
	}
}

func TestExpandExact3(t *testing.T) {
	ids := collect(t, "", "567")

	if len(ids) != 10 {
		t.Fatalf("expected 10 identifiers, got %d", len(ids))
	}
	for i, id := range ids {
		want := "1380755" + string(rune('0'+i)) + "567"
		if id != want {
			t.Errorf("identifier[%d] = %q, want %q", i, id, want)
		}
	}
}

func TestExpandRestartable(t *testing.T) {
	seq := Expand(segment, "", "567")

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	if first != second {
		t.Errorf("sequence not restartable: first pass %d, second pass %d", first, second)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name   string
		exact4 string
		exact3 string
		want   int
	}{
		{"full", "", "", 10000},
		{"exact4", "1234", "", 1},
		{"exact3", "", "567", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.exact4, tt.exact3); got != tt.want {
				t.Errorf("Count(%q, %q) = %d, want %d", tt.exact4, tt.exact3, got, tt.want)
			}
		})
	}
}
