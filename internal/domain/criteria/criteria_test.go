package criteria

import "testing"

func strp(s string) *string { return &s }

func TestNormalizeSingleElementList(t *testing.T) {
	c := Criteria{Districts: []string{"Wola"}}
	c.Normalize()

	if c.District == nil || *c.District != "Wola" {
		t.Errorf("district = %v, want Wola", c.District)
	}
	if c.Districts != nil {
		t.Errorf("districts = %v, want nil after collapse", c.Districts)
	}
}

func TestNormalizeLongerList(t *testing.T) {
	c := Criteria{Districts: []string{"Bemowo", "Mokotów"}}
	c.Normalize()

	if c.District == nil || *c.District != "Bemowo" {
		t.Errorf("district = %v, want first list element", c.District)
	}
	if len(c.Districts) != 2 {
		t.Errorf("districts = %v, want kept", c.Districts)
	}
}

func TestNormalizeListOverridesSingular(t *testing.T) {
	c := Criteria{District: strp("Praga"), Districts: []string{"Bemowo", "Wola"}}
	c.Normalize()

	if *c.District != "Bemowo" {
		t.Errorf("district = %q, want Bemowo", *c.District)
	}
}

func TestDistrictList(t *testing.T) {
	c := Criteria{}
	if got := c.DistrictList(); got != nil {
		t.Errorf("empty criteria list = %v, want nil", got)
	}

	c.District = strp("Wola")
	if got := c.DistrictList(); len(got) != 1 || got[0] != "Wola" {
		t.Errorf("singular list = %v, want [Wola]", got)
	}

	c.Districts = []string{"Bemowo", "Mokotów"}
	if got := c.DistrictList(); len(got) != 2 || got[0] != "Bemowo" {
		t.Errorf("list = %v, want explicit list to win", got)
	}
}

func TestIsEmpty(t *testing.T) {
	c := Criteria{}
	if !c.IsEmpty() {
		t.Error("zero criteria should be empty")
	}

	c.Transaction = TransactionRent
	if c.IsEmpty() {
		t.Error("criteria with a transaction should not be empty")
	}

	rooms := 2
	c = Criteria{RoomCount: &rooms}
	if c.IsEmpty() {
		t.Error("criteria with a room count should not be empty")
	}

	no := false
	c = Criteria{HasBalcony: &no}
	if c.IsEmpty() {
		t.Error("explicit false is a constraint, not emptiness")
	}
}
