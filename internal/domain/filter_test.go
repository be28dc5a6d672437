package domain

import "testing"

func TestFilterSet_IsEmpty(t *testing.T) {
	if !(FilterSet{}).IsEmpty() {
		t.Error("zero FilterSet should be empty")
	}
	if (FilterSet{Location: "Berlin"}).IsEmpty() {
		t.Error("location filter should not be empty")
	}
	if (FilterSet{MinExperience: MinExp(0)}).IsEmpty() {
		t.Error("explicit zero min_experience is a real filter")
	}
}

func TestFilterSet_Canonical(t *testing.T) {
	m := FilterSet{Location: "Berlin", MinExperience: MinExp(3)}.Canonical()
	if m["location"] != "Berlin" {
		t.Errorf("unexpected location: %v", m["location"])
	}
	if m["min_experience"] != 3 {
		t.Errorf("unexpected min_experience: %v", m["min_experience"])
	}

	// Absent filters are omitted, not encoded as nulls.
	m = FilterSet{}.Canonical()
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}
