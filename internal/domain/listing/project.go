package listing

// Metadata is the flat scalar/categorical/boolean projection of a listing
// used for filtering and indexing. Only present source fields produce keys:
// absence is preserved as absence, never as zero or false, so the filter
// engine cannot over- or under-match on defaulted values.
type Metadata struct {
	Numerics map[string]float64
	Tags     map[string]string
	Flags    map[string]bool
}

// Project extracts the metadata record from a listing.
func Project(l Listing) Metadata {
	m := Metadata{
		Numerics: make(map[string]float64),
		Tags:     make(map[string]string),
		Flags:    make(map[string]bool),
	}

	if l.Price != nil {
		m.Numerics["price"] = float64(*l.Price)
	}
	if l.RentFee != nil {
		m.Numerics["rent_fee"] = float64(*l.RentFee)
	}
	if l.RoomCount != nil {
		m.Numerics["room_count"] = float64(*l.RoomCount)
	}
	if l.Area != nil {
		m.Numerics["area"] = *l.Area
	}
	if l.Floor != nil {
		m.Numerics["floor"] = float64(*l.Floor)
	}
	if year, ok := l.BuildYearInt(); ok {
		m.Numerics["build_year"] = float64(year)
	}

	for key, val := range map[string]string{
		"province":          l.Province,
		"city":              l.City,
		"district":          l.District,
		"neighbourhood":     l.Neighbourhood,
		"street":            l.Street,
		"building_type":     l.BuildingType,
		"building_material": l.BuildingMaterial,
		"heating":           l.Heating,
		"finish_state":      l.FinishState,
		"market_type":       l.MarketType,
	} {
		if val != "" {
			m.Tags[key] = val
		}
	}
	if l.Partition != "" {
		m.Tags["partition"] = string(l.Partition)
	}

	for key, val := range map[string]*bool{
		"has_garage":           l.HasGarage,
		"has_parking":          l.HasParking,
		"has_balcony":          l.HasBalcony,
		"has_elevator":         l.HasElevator,
		"has_air_conditioning": l.HasAirConditioning,
		"pets_allowed":         l.PetsAllowed,
		"furnished":            l.Furnished,
	} {
		if val != nil {
			m.Flags[key] = *val
		}
	}

	return m
}
