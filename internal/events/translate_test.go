package events

import (
	"reflect"
	"testing"

	models "stokercloud_gateway"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()

	table := map[string]string{"IGN": "Ignition", "ALM": "Alarm"}

	cases := []struct {
		name         string
		records      []models.EventRecord
		translations map[string]string
		want         []models.EventRecord
	}{
		{
			name:         "matching string field gains sibling",
			records:      []models.EventRecord{{"type": "IGN"}},
			translations: table,
			want:         []models.EventRecord{{"type": "IGN", "type_translated": "Ignition"}},
		},
		{
			name:         "no matching field passes through",
			records:      []models.EventRecord{{"type": "UNKNOWN", "level": 3}},
			translations: table,
			want:         []models.EventRecord{{"type": "UNKNOWN", "level": 3}},
		},
		{
			name:         "multiple fields annotated independently",
			records:      []models.EventRecord{{"type": "IGN", "state": "ALM", "note": "free text"}},
			translations: table,
			want: []models.EventRecord{{
				"type": "IGN", "type_translated": "Ignition",
				"state": "ALM", "state_translated": "Alarm",
				"note": "free text",
			}},
		},
		{
			name:         "empty table is identity",
			records:      []models.EventRecord{{"type": "IGN"}},
			translations: nil,
			want:         []models.EventRecord{{"type": "IGN"}},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Annotate(tc.records, tc.translations)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("annotate mismatch:\n got %v\nwant %v", got, tc.want)
			}
		})
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := []models.EventRecord{{"type": "IGN"}}
	_ = Annotate(original, map[string]string{"IGN": "Ignition"})

	if len(original[0]) != 1 || original[0]["type"] != "IGN" {
		t.Errorf("input record was mutated: %v", original[0])
	}
}
