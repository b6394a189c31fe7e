package chi

import (
	"fmt"

	"github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/search"
)

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// SearchResultItem is one hit in the search response. Metadata is the flat
// projection of the listing's present attributes; clients filter and render
// from it without re-deriving presence rules.
type SearchResultItem struct {
	Listing    ListingDTO  `json:"listing"`
	Score      float64     `json:"score"`
	Provenance string      `json:"provenance"`
	Metadata   MetadataDTO `json:"metadata"`
}

// MetadataDTO is the wire shape of a listing projection.
type MetadataDTO struct {
	Numerics map[string]float64 `json:"numerics,omitempty"`
	Tags     map[string]string  `json:"tags,omitempty"`
	Flags    map[string]bool    `json:"flags,omitempty"`
}

// SearchResponse is the POST /search response.
type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// ListingDTO is the wire shape of a listing. Optional fields are pointers
// with omitempty so an unknown attribute is absent from the JSON, not a
// zero.
type ListingDTO struct {
	ID          string `json:"id,omitempty"`
	Link        string `json:"link,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Partition   string `json:"partition"`

	Price     *int     `json:"price,omitempty"`
	RentFee   *int     `json:"rent_fee,omitempty"`
	RoomCount *int     `json:"room_count,omitempty"`
	Area      *float64 `json:"area,omitempty"`
	Floor     *int     `json:"floor,omitempty"`

	Province      string `json:"province,omitempty"`
	City          string `json:"city,omitempty"`
	District      string `json:"district,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	Street        string `json:"street,omitempty"`
	HouseNumber   *int   `json:"house_number,omitempty"`

	BuildYear        string `json:"build_year,omitempty"`
	BuildingMaterial string `json:"building_material,omitempty"`
	BuildingType     string `json:"building_type,omitempty"`
	Heating          string `json:"heating,omitempty"`
	FinishState      string `json:"finish_state,omitempty"`
	MarketType       string `json:"market_type,omitempty"`

	HasGarage          *bool `json:"has_garage,omitempty"`
	HasParking         *bool `json:"has_parking,omitempty"`
	HasBalcony         *bool `json:"has_balcony,omitempty"`
	HasElevator        *bool `json:"has_elevator,omitempty"`
	HasAirConditioning *bool `json:"has_air_conditioning,omitempty"`
	PetsAllowed        *bool `json:"pets_allowed,omitempty"`
	Furnished          *bool `json:"furnished,omitempty"`
}

// IngestResponse is the POST /listings response.
type IngestResponse struct {
	ID        string `json:"id"`
	Partition string `json:"partition"`
}

// ErrorResponse is the error body for every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func listingFromDTO(dto ListingDTO) (listing.Listing, error) {
	p := listing.Partition(dto.Partition)
	switch p {
	case listing.PartitionRent, listing.PartitionSale:
	default:
		return listing.Listing{}, fmt.Errorf("partition must be rent or sale, got %q", dto.Partition)
	}

	return listing.Listing{
		ID:          dto.ID,
		Link:        dto.Link,
		Title:       dto.Title,
		Description: dto.Description,
		Partition:   p,

		Price:     dto.Price,
		RentFee:   dto.RentFee,
		RoomCount: dto.RoomCount,
		Area:      dto.Area,
		Floor:     dto.Floor,

		Province:      dto.Province,
		City:          dto.City,
		District:      dto.District,
		Neighbourhood: dto.Neighbourhood,
		Street:        dto.Street,
		HouseNumber:   dto.HouseNumber,

		BuildYear:        dto.BuildYear,
		BuildingMaterial: dto.BuildingMaterial,
		BuildingType:     dto.BuildingType,
		Heating:          dto.Heating,
		FinishState:      dto.FinishState,
		MarketType:       dto.MarketType,

		HasGarage:          dto.HasGarage,
		HasParking:         dto.HasParking,
		HasBalcony:         dto.HasBalcony,
		HasElevator:        dto.HasElevator,
		HasAirConditioning: dto.HasAirConditioning,
		PetsAllowed:        dto.PetsAllowed,
		Furnished:          dto.Furnished,
	}, nil
}

func listingToDTO(l listing.Listing) ListingDTO {
	return ListingDTO{
		ID:          l.ID,
		Link:        l.Link,
		Title:       l.Title,
		Description: l.Description,
		Partition:   string(l.Partition),

		Price:     l.Price,
		RentFee:   l.RentFee,
		RoomCount: l.RoomCount,
		Area:      l.Area,
		Floor:     l.Floor,

		Province:      l.Province,
		City:          l.City,
		District:      l.District,
		Neighbourhood: l.Neighbourhood,
		Street:        l.Street,
		HouseNumber:   l.HouseNumber,

		BuildYear:        l.BuildYear,
		BuildingMaterial: l.BuildingMaterial,
		BuildingType:     l.BuildingType,
		Heating:          l.Heating,
		FinishState:      l.FinishState,
		MarketType:       l.MarketType,

		HasGarage:          l.HasGarage,
		HasParking:         l.HasParking,
		HasBalcony:         l.HasBalcony,
		HasElevator:        l.HasElevator,
		HasAirConditioning: l.HasAirConditioning,
		PetsAllowed:        l.PetsAllowed,
		Furnished:          l.Furnished,
	}
}

func resultToDTO(r search.Result) SearchResultItem {
	meta := listing.Project(r.Listing())
	return SearchResultItem{
		Listing:    listingToDTO(r.Listing()),
		Score:      r.Score(),
		Provenance: string(r.Provenance()),
		Metadata: MetadataDTO{
			Numerics: meta.Numerics,
			Tags:     meta.Tags,
			Flags:    meta.Flags,
		},
	}
}
