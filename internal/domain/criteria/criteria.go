package criteria

// Transaction classifies the requested deal type.
type Transaction string

const (
	// TransactionUnspecified means the query did not say rent or sale.
	TransactionUnspecified Transaction = ""
	// TransactionRent targets the rent partition.
	TransactionRent Transaction = "rent"
	// TransactionSale targets the sale partition.
	TransactionSale Transaction = "sale"
)

// Criteria is the canonical typed representation of a user's structured
// search intent. Every field defaults to unknown: nil pointers mean the
// query did not state the field, which is distinct from an explicit false
// for booleans and from "no bound" for ranges. A field participates in
// structured filtering only when it is non-nil.
type Criteria struct {
	// Location hierarchy.
	Province      *string
	City          *string
	District      *string
	Districts     []string // several districts joined by "or"; takes precedence over District
	Neighbourhood *string
	Street        *string
	HouseNumber   *int

	Transaction Transaction

	// Numeric bounds. All inclusive; MinArea is a lower bound only.
	MinPrice     *int
	MaxPrice     *int
	MaxRentFee   *int
	RoomCount    *int
	Floor        *int
	MinArea      *float64
	MinBuildYear *int
	MaxBuildYear *int

	// Categorical attributes.
	MarketType       *string
	FinishState      *string
	BuildingMaterial *string
	BuildingType     *string
	Heating          *string

	// Tri-state amenity requirements: nil = unknown, false = explicitly absent.
	HasGarage          *bool
	HasParking         *bool
	HasBalcony         *bool
	HasElevator        *bool
	HasAirConditioning *bool
	PetsAllowed        *bool
	Furnished          *bool
}

// Normalize reconciles the single-district field with the district list so
// the record never carries conflicting content: a one-element list collapses
// into District, a longer list forces District to its first element.
func (c *Criteria) Normalize() {
	switch len(c.Districts) {
	case 0:
		return
	case 1:
		d := c.Districts[0]
		c.District = &d
		c.Districts = nil
	default:
		d := c.Districts[0]
		c.District = &d
	}
}

// DistrictList returns the effective district membership set: the explicit
// list when present, otherwise the singular district as a one-element list.
func (c *Criteria) DistrictList() []string {
	if len(c.Districts) > 0 {
		return c.Districts
	}
	if c.District != nil {
		return []string{*c.District}
	}
	return nil
}

// IsEmpty reports whether every field is unknown.
func (c *Criteria) IsEmpty() bool {
	return c.Province == nil && c.City == nil && c.District == nil &&
		len(c.Districts) == 0 && c.Neighbourhood == nil && c.Street == nil &&
		c.HouseNumber == nil && c.Transaction == TransactionUnspecified &&
		c.MinPrice == nil && c.MaxPrice == nil && c.MaxRentFee == nil &&
		c.RoomCount == nil && c.Floor == nil && c.MinArea == nil &&
		c.MinBuildYear == nil && c.MaxBuildYear == nil &&
		c.MarketType == nil && c.FinishState == nil &&
		c.BuildingMaterial == nil && c.BuildingType == nil && c.Heating == nil &&
		c.HasGarage == nil && c.HasParking == nil && c.HasBalcony == nil &&
		c.HasElevator == nil && c.HasAirConditioning == nil &&
		c.PetsAllowed == nil && c.Furnished == nil
}
