// Package query maps a criteria record onto a structured query over the
// listings store: partition selection plus equality, range, and membership
// predicates. Predicate evaluation is in-process so every store backend
// shares one documented semantics.
package query

import (
	"strings"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
	"github.com/kailas-cloud/domek/internal/domain/listing"
)

// Query is a compiled structured filter.
type Query struct {
	partitions []listing.Partition
	crit       criteria.Criteria
}

// Build compiles criteria into a query. Transaction rent or sale selects a
// single partition; unspecified searches both, rent first.
func Build(c criteria.Criteria) Query {
	c.Normalize()

	var parts []listing.Partition
	switch c.Transaction {
	case criteria.TransactionRent:
		parts = []listing.Partition{listing.PartitionRent}
	case criteria.TransactionSale:
		parts = []listing.Partition{listing.PartitionSale}
	default:
		parts = listing.Partitions()
	}

	return Query{partitions: parts, crit: c}
}

// Partitions returns the partitions the query targets, in search order.
func (q Query) Partitions() []listing.Partition {
	return q.partitions
}

// Matches reports whether a listing satisfies every present criteria field.
// Semantics: fields absent from the criteria never constrain; inclusive
// numeric ranges; area is a lower bound only; district membership is a
// case-insensitive substring test with the explicit list taking precedence;
// booleans require an exact stored value — a listing with an unknown flag
// fails an explicit boolean filter, true or false alike; a listing without
// a parseable build year fails any build-year bound. Partition selection is
// handled by the store, not here.
func (q Query) Matches(l listing.Listing) bool {
	c := q.crit

	if !matchTag(c.Province, l.Province) ||
		!matchTag(c.City, l.City) ||
		!matchTag(c.Neighbourhood, l.Neighbourhood) ||
		!matchTag(c.Street, l.Street) {
		return false
	}
	if !matchDistrict(c.DistrictList(), l.District) {
		return false
	}
	if !matchIntEq(c.HouseNumber, l.HouseNumber) ||
		!matchIntEq(c.RoomCount, l.RoomCount) ||
		!matchIntEq(c.Floor, l.Floor) {
		return false
	}

	if c.MinPrice != nil && (l.Price == nil || *l.Price < *c.MinPrice) {
		return false
	}
	if c.MaxPrice != nil && (l.Price == nil || *l.Price > *c.MaxPrice) {
		return false
	}
	if c.MaxRentFee != nil && (l.RentFee == nil || *l.RentFee > *c.MaxRentFee) {
		return false
	}
	if c.MinArea != nil && (l.Area == nil || *l.Area < *c.MinArea) {
		return false
	}

	if c.MinBuildYear != nil || c.MaxBuildYear != nil {
		year, ok := l.BuildYearInt()
		if !ok {
			return false
		}
		if c.MinBuildYear != nil && year < *c.MinBuildYear {
			return false
		}
		if c.MaxBuildYear != nil && year > *c.MaxBuildYear {
			return false
		}
	}

	if !matchTag(c.MarketType, l.MarketType) ||
		!matchTag(c.FinishState, l.FinishState) ||
		!matchTag(c.BuildingMaterial, l.BuildingMaterial) ||
		!matchTag(c.BuildingType, l.BuildingType) ||
		!matchTag(c.Heating, l.Heating) {
		return false
	}

	if !matchFlag(c.HasGarage, l.HasGarage) ||
		!matchFlag(c.HasParking, l.HasParking) ||
		!matchFlag(c.HasBalcony, l.HasBalcony) ||
		!matchFlag(c.HasElevator, l.HasElevator) ||
		!matchFlag(c.HasAirConditioning, l.HasAirConditioning) ||
		!matchFlag(c.PetsAllowed, l.PetsAllowed) ||
		!matchFlag(c.Furnished, l.Furnished) {
		return false
	}

	return true
}

// matchTag is a case-insensitive exact match against a categorical field.
func matchTag(want *string, have string) bool {
	if want == nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(*want), strings.TrimSpace(have))
}

// matchDistrict accepts a listing whose district contains any requested
// district, case-insensitively ($in-style membership over the list).
func matchDistrict(wanted []string, have string) bool {
	if len(wanted) == 0 {
		return true
	}
	haveLower := strings.ToLower(have)
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(haveLower, strings.ToLower(strings.TrimSpace(w))) {
			return true
		}
	}
	return false
}

func matchIntEq(want, have *int) bool {
	if want == nil {
		return true
	}
	return have != nil && *have == *want
}

// matchFlag requires an exact stored boolean; unknown stored values fail
// the filter regardless of the requested polarity.
func matchFlag(want, have *bool) bool {
	if want == nil {
		return true
	}
	return have != nil && *have == *want
}
