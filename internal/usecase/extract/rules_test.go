package extract

import (
	"testing"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
)

func TestRulesFullQuery(t *testing.T) {
	r := NewRules()

	c := r.Apply("Szukam 2 pokoje na wynajem na Mokotowie do 3000")

	if c.Transaction != criteria.TransactionRent {
		t.Errorf("transaction = %q, want rent", c.Transaction)
	}
	if c.RoomCount == nil || *c.RoomCount != 2 {
		t.Errorf("room count = %v, want 2", c.RoomCount)
	}
	if c.MaxPrice == nil || *c.MaxPrice != 3000 {
		t.Errorf("max price = %v, want 3000", c.MaxPrice)
	}
	if c.District == nil || *c.District != "Mokotów" {
		t.Errorf("district = %v, want Mokotów", c.District)
	}
	if c.MinPrice != nil {
		t.Errorf("min price = %v, want nil", c.MinPrice)
	}
}

func TestRulesTransaction(t *testing.T) {
	r := NewRules()

	tests := []struct {
		query string
		want  criteria.Transaction
	}{
		{"mieszkanie na wynajem", criteria.TransactionRent},
		{"chcę kupić mieszkanie", criteria.TransactionSale},
		{"apartment for rent", criteria.TransactionRent},
		{"купить квартиру", criteria.TransactionSale},
		{"аренда в Варшаве", criteria.TransactionRent},
		// Rent wins when both appear.
		{"kupić czy wynajem?", criteria.TransactionRent},
		{"mieszkanie w Warszawie", criteria.TransactionUnspecified},
	}

	for _, tt := range tests {
		if got := r.Apply(tt.query).Transaction; got != tt.want {
			t.Errorf("Apply(%q).Transaction = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestRulesRoomPatterns(t *testing.T) {
	r := NewRules()

	tests := []struct {
		query string
		want  int
	}{
		{"kawalerka w centrum", 1},
		{"studio flat", 1},
		{"1 pokój", 1},
		{"2 pokoje", 2},
		{"dwupokojowe mieszkanie", 2},
		{"3 pok.", 3},
		{"trzypokojowe", 3},
		{"4 pokoje", 4},
		{"czteropokojowe", 4},
	}

	for _, tt := range tests {
		c := r.Apply(tt.query)
		if c.RoomCount == nil || *c.RoomCount != tt.want {
			t.Errorf("Apply(%q).RoomCount = %v, want %d", tt.query, c.RoomCount, tt.want)
		}
	}

	if c := r.Apply("mieszkanie z balkonem"); c.RoomCount != nil {
		t.Errorf("room count = %v, want nil", c.RoomCount)
	}
}

func TestRulesRoomPatternOrder(t *testing.T) {
	r := NewRules()

	// The earlier pattern in the table wins even when a later one also matches.
	c := r.Apply("1 pok albo dwupokojowe")
	if c.RoomCount == nil || *c.RoomCount != 1 {
		t.Errorf("room count = %v, want 1", c.RoomCount)
	}
}

func TestRulesPriceBounds(t *testing.T) {
	r := NewRules()

	c := r.Apply("od 2000 do 3500 zł")
	if c.MinPrice == nil || *c.MinPrice != 2000 {
		t.Errorf("min price = %v, want 2000", c.MinPrice)
	}
	if c.MaxPrice == nil || *c.MaxPrice != 3500 {
		t.Errorf("max price = %v, want 3500", c.MaxPrice)
	}
}

func TestRulesDistrictEarliestOccurrence(t *testing.T) {
	r := NewRules()

	// Wola appears before Mokotów in the query even though Mokotów comes
	// first in the gazetteer.
	c := r.Apply("Wola albo Mokotów")
	if c.District == nil || *c.District != "Wola" {
		t.Errorf("district = %v, want Wola", c.District)
	}
}

func TestRulesDistrictInflectedForms(t *testing.T) {
	r := NewRules()

	// Polish case endings change the surface form; the gazetteer must
	// still resolve them to the canonical district.
	tests := []struct {
		query string
		want  string
	}{
		{"2 pokoje na Mokotowie", "Mokotów"},
		{"kawalerka na Woli", "Wola"},
		{"mieszkanie na Żoliborzu", "Żoliborz"},
		{"apartament w Śródmieściu", "Śródmieście"},
		{"dom na Pradze", "Praga"},
		{"nowe osiedle na Białołęce", "Białołęka"},
		{"mieszkanie na Targówku", "Targówek"},
		{"blok na Bielanach", "Bielany"},
	}

	for _, tt := range tests {
		c := r.Apply(tt.query)
		if c.District == nil || *c.District != tt.want {
			t.Errorf("Apply(%q).District = %v, want %s", tt.query, c.District, tt.want)
		}
	}
}

func TestRulesDistrictStemNeedsWordStart(t *testing.T) {
	r := NewRules()

	// "powoli" and "wolę" contain Wola stems mid-word or inflected past
	// recognition; neither names the district.
	for _, q := range []string{"powoli szukam mieszkania", "wolę mieszkanie z balkonem"} {
		if c := r.Apply(q); c.District != nil {
			t.Errorf("Apply(%q).District = %v, want nil", q, *c.District)
		}
	}
}

func TestRulesDistrictCapitalized(t *testing.T) {
	r := NewRules()

	c := r.Apply("mieszkanie na żoliborzu nie, śródmieście tak")
	if c.District == nil || *c.District != "Żoliborz" {
		t.Errorf("district = %v, want Żoliborz", c.District)
	}
}

func TestRulesNoSignal(t *testing.T) {
	r := NewRules()

	c := r.Apply("ładne jasne mieszkanie blisko parku")
	if !c.IsEmpty() {
		t.Errorf("criteria = %+v, want empty", c)
	}
}
