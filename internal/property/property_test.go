package property

import (
	"encoding/json"
	"strings"
	"testing"
)

func sample() Property {
	return Property{
		ID:             1,
		Prefecture:     "東京都",
		City:           "新宿区",
		Town:           "西新宿",
		Chome:          "2丁目",
		Banchi:         "8番",
		Go:             "1号",
		Building:       "都庁前ビル301",
		Price:          "3,480万円",
		NearestStation: "都庁前",
		PropertyType:   "マンション",
		LandArea:       "58.1m²",
	}
}

func TestFullAddress(t *testing.T) {
	p := sample()
	want := "東京都新宿区西新宿2丁目8番1号都庁前ビル301"
	if got := p.FullAddress(); got != want {
		t.Errorf("FullAddress: got %q, want %q", got, want)
	}
}

func TestMarshalJSON_AddsFullAddress(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if m["full_address"] != "東京都新宿区西新宿2丁目8番1号都庁前ビル301" {
		t.Errorf("full_address: got %v", m["full_address"])
	}
	if m["id"].(float64) != 1 {
		t.Errorf("id: got %v, want 1", m["id"])
	}
	if m["price"] != "3,480万円" {
		t.Errorf("price: got %v", m["price"])
	}
}

func TestMarshalJSON_IDComesFirst(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"id":1,"full_address":`) {
		t.Errorf("unexpected field order: %s", data)
	}
}

func TestColumnNames_MatchesSchemaOrder(t *testing.T) {
	want := []string{
		"prefecture", "city", "town", "chome", "banchi", "go", "building",
		"price", "nearest_station", "property_type", "land_area",
	}
	got := ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("ColumnNames: got %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ColumnNames[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColumns_SettersCoverEveryField(t *testing.T) {
	var p Property
	for _, col := range Columns {
		col.Set(&p, "v")
	}
	want := Property{
		Prefecture: "v", City: "v", Town: "v", Chome: "v", Banchi: "v",
		Go: "v", Building: "v", Price: "v", NearestStation: "v",
		PropertyType: "v", LandArea: "v",
	}
	if p != want {
		t.Errorf("setters left fields unassigned: %+v", p)
	}
}
