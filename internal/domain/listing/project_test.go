package listing

import "testing"

func TestProjectPresentFieldsOnly(t *testing.T) {
	price := 3000
	area := 52.0
	no := false
	l := Listing{
		Partition:  PartitionRent,
		City:       "Warszawa",
		Price:      &price,
		Area:       &area,
		HasBalcony: &no,
	}

	m := Project(l)

	if m.Numerics["price"] != 3000 || m.Numerics["area"] != 52.0 {
		t.Errorf("numerics = %v", m.Numerics)
	}
	if _, ok := m.Numerics["room_count"]; ok {
		t.Error("absent room count projected")
	}
	if m.Tags["city"] != "Warszawa" || m.Tags["partition"] != "rent" {
		t.Errorf("tags = %v", m.Tags)
	}
	if _, ok := m.Tags["district"]; ok {
		t.Error("absent district projected")
	}

	// Explicit false is a fact, unknown is not.
	if v, ok := m.Flags["has_balcony"]; !ok || v {
		t.Errorf("has_balcony = (%v, %v), want explicit false", v, ok)
	}
	if _, ok := m.Flags["has_garage"]; ok {
		t.Error("unknown flag projected")
	}
}

func TestProjectBuildYear(t *testing.T) {
	m := Project(Listing{BuildYear: "2015"})
	if m.Numerics["build_year"] != 2015 {
		t.Errorf("build_year = %v, want 2015", m.Numerics["build_year"])
	}

	m = Project(Listing{BuildYear: "unknown"})
	if _, ok := m.Numerics["build_year"]; ok {
		t.Error("unparsable build year projected")
	}
}
