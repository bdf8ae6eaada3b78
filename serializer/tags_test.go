package serializer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFieldTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want []tagEntry
	}{
		{"empty", "", nil},
		{"flag", "omitzero", []tagEntry{{key: "omitzero"}}},
		{"rename", "name=Count", []tagEntry{{key: "name", value: "Count"}}},
		{"repeated formerly keeps order", "formerly=NumItems,formerly=ItemCount",
			[]tagEntry{{key: "formerly", value: "NumItems"}, {key: "formerly", value: "ItemCount"}}},
		{"mixed", "name=Count,omitzero,formerly=NumItems",
			[]tagEntry{{key: "name", value: "Count"}, {key: "omitzero"}, {key: "formerly", value: "NumItems"}}},
		{"quoted comma", `name="a,b"`, []tagEntry{{key: "name", value: "a,b"}}},
		{"single quoted", "name='odd key'", []tagEntry{{key: "name", value: "odd key"}}},
		{"spaces trimmed", " omitzero , name=X ", []tagEntry{{key: "omitzero"}, {key: "name", value: "X"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFieldTag(tt.tag)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(tagEntry{})); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFieldTag_EmptyKey(t *testing.T) {
	if _, err := parseFieldTag("=oops"); err == nil {
		t.Error("expected error for empty key")
	}
}
