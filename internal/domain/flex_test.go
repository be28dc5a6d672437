package domain

import (
	"encoding/json"
	"testing"
)

func TestDecodeFlex_FlatList(t *testing.T) {
	f := DecodeFlex([]byte(`["Go", "Python", "SQL"]`))
	if f.Kind() != FlexFlat {
		t.Fatalf("expected FlexFlat, got %v", f.Kind())
	}
	if got := f.FormatList(); got != "Go, Python, SQL" {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestDecodeFlex_StructuredList(t *testing.T) {
	data := []byte(`[
		{"position": "Engineer", "company": "Acme", "years": 3},
		{"position": "Lead", "company": "Globex"}
	]`)
	f := DecodeFlex(data)
	if f.Kind() != FlexStructured {
		t.Fatalf("expected FlexStructured, got %v", f.Kind())
	}
	got := f.FormatRecords("position", "company")
	want := "Engineer - Acme; Lead - Globex"
	if got != want {
		t.Errorf("unexpected format:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestDecodeFlex_ManualListObject(t *testing.T) {
	f := DecodeFlex([]byte(`{"manual_list": ["Docker", "Kubernetes"]}`))
	if f.Kind() != FlexFlat {
		t.Fatalf("expected FlexFlat, got %v", f.Kind())
	}
	if got := f.FormatList(); got != "Docker, Kubernetes" {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestDecodeFlex_MalformedDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{`{broken`, `42`, `"just a string"`, `null`, ``} {
		f := DecodeFlex([]byte(raw))
		if !f.IsEmpty() {
			t.Errorf("input %q: expected empty field, got kind %v", raw, f.Kind())
		}
	}
}

func TestDecodeFlex_NumericRecordValues(t *testing.T) {
	f := DecodeFlex([]byte(`[{"name": "ETL pipeline", "year": 2023}]`))
	recs := f.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0]["year"] != "2023" {
		t.Errorf("expected year stringified as 2023, got %q", recs[0]["year"])
	}
}

func TestFlexField_JSONRoundTrip(t *testing.T) {
	orig := NewStructuredField([]FlexRecord{
		{"name": "search service", "description": "hybrid retrieval"},
	})

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back FlexField
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind() != FlexStructured {
		t.Fatalf("expected FlexStructured after round trip, got %v", back.Kind())
	}
	if got := back.FormatRecords("name", "description"); got != "search service - hybrid retrieval" {
		t.Errorf("unexpected round-trip content: %q", got)
	}
}

func TestFlexField_EmptyMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(FlexField{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("expected null, got %s", data)
	}
}

func TestFormatRecords_OnFlatField(t *testing.T) {
	f := NewFlatField([]string{"a", "b"})
	if got := f.FormatRecords("name"); got != "" {
		t.Errorf("expected empty string for flat field, got %q", got)
	}
}
