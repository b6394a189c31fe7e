package listings

import (
	"strconv"

	domlisting "github.com/kailas-cloud/domek/internal/domain/listing"
)

// buildHashFields converts a domain Listing into a flat map[string]string
// for HSET. Absent optional fields produce no hash field at all, so
// unknown stays unknown after a round trip.
func buildHashFields(l *domlisting.Listing) map[string]string {
	m := map[string]string{
		"link":  l.Link,
		"title": l.Title,
	}
	setStr := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	setStr("description", l.Description)
	setStr("province", l.Province)
	setStr("city", l.City)
	setStr("district", l.District)
	setStr("neighbourhood", l.Neighbourhood)
	setStr("street", l.Street)
	setStr("build_year", l.BuildYear)
	setStr("building_material", l.BuildingMaterial)
	setStr("building_type", l.BuildingType)
	setStr("heating", l.Heating)
	setStr("finish_state", l.FinishState)
	setStr("market_type", l.MarketType)

	setInt := func(k string, v *int) {
		if v != nil {
			m[k] = strconv.Itoa(*v)
		}
	}
	setInt("price", l.Price)
	setInt("rent_fee", l.RentFee)
	setInt("room_count", l.RoomCount)
	setInt("floor", l.Floor)
	setInt("house_number", l.HouseNumber)

	if l.Area != nil {
		m["area"] = strconv.FormatFloat(*l.Area, 'f', -1, 64)
	}

	setBool := func(k string, v *bool) {
		if v != nil {
			m[k] = strconv.FormatBool(*v)
		}
	}
	setBool("has_garage", l.HasGarage)
	setBool("has_parking", l.HasParking)
	setBool("has_balcony", l.HasBalcony)
	setBool("has_elevator", l.HasElevator)
	setBool("has_air_conditioning", l.HasAirConditioning)
	setBool("pets_allowed", l.PetsAllowed)
	setBool("furnished", l.Furnished)

	return m
}

// parseHashFields converts a flat hash map back into a domain Listing.
// Unparseable numeric/boolean fields are dropped rather than defaulted.
func parseHashFields(id string, partition domlisting.Partition, m map[string]string) domlisting.Listing {
	l := domlisting.Listing{
		ID:               id,
		Partition:        partition,
		Link:             m["link"],
		Title:            m["title"],
		Description:      m["description"],
		Province:         m["province"],
		City:             m["city"],
		District:         m["district"],
		Neighbourhood:    m["neighbourhood"],
		Street:           m["street"],
		BuildYear:        m["build_year"],
		BuildingMaterial: m["building_material"],
		BuildingType:     m["building_type"],
		Heating:          m["heating"],
		FinishState:      m["finish_state"],
		MarketType:       m["market_type"],
	}

	getInt := func(k string) *int {
		if s, ok := m[k]; ok {
			if v, err := strconv.Atoi(s); err == nil {
				return &v
			}
		}
		return nil
	}
	l.Price = getInt("price")
	l.RentFee = getInt("rent_fee")
	l.RoomCount = getInt("room_count")
	l.Floor = getInt("floor")
	l.HouseNumber = getInt("house_number")

	if s, ok := m["area"]; ok {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			l.Area = &v
		}
	}

	getBool := func(k string) *bool {
		if s, ok := m[k]; ok {
			if v, err := strconv.ParseBool(s); err == nil {
				return &v
			}
		}
		return nil
	}
	l.HasGarage = getBool("has_garage")
	l.HasParking = getBool("has_parking")
	l.HasBalcony = getBool("has_balcony")
	l.HasElevator = getBool("has_elevator")
	l.HasAirConditioning = getBool("has_air_conditioning")
	l.PetsAllowed = getBool("pets_allowed")
	l.Furnished = getBool("furnished")

	return l
}
