package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Partition is the rent vs. sale subdivision of the listings store.
type Partition string

const (
	// PartitionRent holds rental listings.
	PartitionRent Partition = "rent"
	// PartitionSale holds sale listings.
	PartitionSale Partition = "sale"
)

// Partitions returns all partitions in canonical order (rent first).
func Partitions() []Partition {
	return []Partition{PartitionRent, PartitionSale}
}

// Listing is an immutable (until re-scraped) record owned by the listings
// store; the search pipeline only reads it. Optional attributes use nil to
// preserve absence: a missing amenity flag is not the same as false, and a
// missing price is not zero.
type Listing struct {
	ID          string
	Link        string
	Title       string
	Description string
	Partition   Partition

	Price     *int
	RentFee   *int
	RoomCount *int
	Area      *float64
	Floor     *int

	Province      string
	City          string
	District      string
	Neighbourhood string
	Street        string
	HouseNumber   *int

	// BuildYear is carried as scraped (string); compared numerically where
	// a build-year bound applies.
	BuildYear        string
	BuildingMaterial string
	BuildingType     string
	Heating          string
	FinishState      string
	MarketType       string

	HasGarage          *bool
	HasParking         *bool
	HasBalcony         *bool
	HasElevator        *bool
	HasAirConditioning *bool
	PetsAllowed        *bool
	Furnished          *bool
}

// IDFromLink derives the stable listing key from its source URL.
func IDFromLink(link string) string {
	h := sha256.Sum256([]byte(strings.TrimSpace(link)))
	return hex.EncodeToString(h[:16])
}

// BuildYearInt parses the scraped build year. ok is false when the year is
// missing or not numeric; such listings never satisfy a build-year bound.
func (l *Listing) BuildYearInt() (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(l.BuildYear))
	if err != nil {
		return 0, false
	}
	return y, true
}

const chunkSuffix = "_chunk_"

// ChunkID builds the embedding-record key for the i-th chunk of a listing.
func ChunkID(id string, i int) string {
	return id + chunkSuffix + strconv.Itoa(i)
}

// BaseID strips a chunk suffix from an embedding-record key. Chunk-level
// keys identify the same listing as their base key.
func BaseID(id string) string {
	i := strings.LastIndex(id, chunkSuffix)
	if i < 0 {
		return id
	}
	if _, err := strconv.Atoi(id[i+len(chunkSuffix):]); err != nil {
		return id
	}
	return id[:i]
}
