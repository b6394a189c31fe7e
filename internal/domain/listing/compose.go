package listing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Section separators of the composed text. The section separator is distinct
// from the in-section separator so a splitter can recover section boundaries.
const (
	SectionSeparator = " || "
	FieldSeparator   = " | "
)

// descriptionMaxLen bounds the description section; listing descriptions
// front-load the informative content, so a prefix cut loses little recall.
const descriptionMaxLen = 700

var (
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	noiseSymbolRe = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:()\-–—€£$%°]+`)
	repeatPunctRe = regexp.MustCompile(`[.,!?;:]{2,}`)
)

// CleanText collapses whitespace and strips symbols that carry no meaning
// for lexical or semantic matching. A run of punctuation collapses to its
// first character.
func CleanText(s string) string {
	s = noiseSymbolRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = repeatPunctRe.ReplaceAllStringFunc(s, func(m string) string { return m[:1] })
	return strings.TrimSpace(s)
}

// cutAtRune truncates s to at most max bytes without splitting a rune.
func cutAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Compose builds the deterministic, section-structured textual
// representation of a listing used for embedding and indexing. Sections
// appear in a stable order with fixed labels; numeric specs are rendered
// with several lexical variants to improve recall for both embedding and
// keyword matching.
func Compose(l Listing) string {
	var sections []string

	if l.Title != "" {
		sections = append(sections, "OGŁOSZENIE: "+CleanText(l.Title))
	}

	var specs []string
	if l.RoomCount != nil {
		specs = append(specs, roomVariants(*l.RoomCount))
	}
	if l.Area != nil {
		specs = append(specs, fmt.Sprintf("%s m² powierzchnia %s metrów kwadratowych",
			formatArea(*l.Area), formatArea(*l.Area)))
	}
	if l.Floor != nil {
		specs = append(specs, floorText(*l.Floor))
	}
	if len(specs) > 0 {
		sections = append(sections, "CHARAKTERYSTYKI: "+strings.Join(specs, FieldSeparator))
	}

	if loc := locationText(l); loc != "" {
		sections = append(sections, "ADRES: "+loc)
	}

	if l.Price != nil {
		sections = append(sections, fmt.Sprintf("CENA: %d zł", *l.Price))
	}

	if l.Description != "" {
		desc := CleanText(l.Description)
		if len(desc) > descriptionMaxLen {
			desc = cutAtRune(desc, descriptionMaxLen) + "..."
		}
		sections = append(sections, "OPIS: "+desc)
	}

	if b := buildingText(l); b != "" {
		sections = append(sections, "BUDYNEK: "+b)
	}

	if a := amenitiesText(l); a != "" {
		sections = append(sections, "UDOGODNIENIA: "+a)
	}

	if m := extraText(l); m != "" {
		sections = append(sections, "DODATKOWO: "+m)
	}

	return strings.Join(sections, SectionSeparator)
}

// roomNames maps room counts to colloquial Polish variants; queries say
// "dwupokojowe" or "kawalerka" far more often than "2 pokoje".
var roomNames = map[int][]string{
	1: {"jednopokojowe", "jeden pokój", "1-pokojowe", "kawalerka"},
	2: {"dwupokojowe", "dwa pokoje", "2-pokojowe"},
	3: {"trzypokojowe", "trzy pokoje", "3-pokojowe"},
	4: {"czteropokojowe", "cztery pokoje", "4-pokojowe"},
	5: {"pięciopokojowe", "pięć pokoi", "5-pokojowe"},
}

func roomVariants(n int) string {
	variants := []string{strconv.Itoa(n) + " pokoi"}
	if names, ok := roomNames[n]; ok {
		variants = append(variants, names...)
	} else {
		variants = append(variants, strconv.Itoa(n)+"-pokojowe")
	}
	return strings.Join(variants, " ")
}

// floorText renders floor 0 as ground-floor synonyms, never the digit 0.
func floorText(floor int) string {
	if floor == 0 {
		return "parter ground floor"
	}
	return fmt.Sprintf("%d piętro floor %d poziom %d", floor, floor, floor)
}

// cityVariants adds transliterations for the cities foreign-language
// queries actually name.
var cityVariants = map[string]string{
	"warszawa": "Warsaw Варшава",
	"kraków":   "Krakow Краков",
}

func locationText(l Listing) string {
	var parts []string
	if l.City != "" {
		parts = append(parts, l.City)
		if v, ok := cityVariants[strings.ToLower(l.City)]; ok {
			parts = append(parts, v)
		}
	}
	if l.District != "" {
		parts = append(parts, fmt.Sprintf("dzielnica %s rejon %s", l.District, l.District))
	}
	if l.Neighbourhood != "" {
		parts = append(parts, "osiedle "+l.Neighbourhood)
	}
	if l.Street != "" {
		street := fmt.Sprintf("ulica %s ul. %s", l.Street, l.Street)
		if l.HouseNumber != nil {
			street += " " + strconv.Itoa(*l.HouseNumber)
		}
		parts = append(parts, street)
	}
	return strings.Join(parts, FieldSeparator)
}

func buildingText(l Listing) string {
	var parts []string
	if year, ok := l.BuildYearInt(); ok {
		parts = append(parts, fmt.Sprintf("zbudowane w %d roku", year))
		switch {
		case year >= 2020:
			parts = append(parts, "nowy budynek")
		case year >= 2010:
			parts = append(parts, "nowoczesny")
		case year >= 2000:
			parts = append(parts, "współczesny")
		default:
			parts = append(parts, "stary kamienica")
		}
	}
	if l.FinishState != "" {
		parts = append(parts, "stan "+l.FinishState)
	}
	if l.BuildingType != "" {
		parts = append(parts, "typ "+l.BuildingType)
	}
	if l.BuildingMaterial != "" {
		parts = append(parts, "materiał "+l.BuildingMaterial)
	}
	return strings.Join(parts, FieldSeparator)
}

// amenityPhrases expands each amenity flag into a synonym cluster rather
// than the bare field name, raising recall for both scorers.
var amenityPhrases = []struct {
	flag   func(Listing) *bool
	phrase string
}{
	{func(l Listing) *bool { return l.HasGarage }, "garaż miejsce w garażu parking podziemny"},
	{func(l Listing) *bool { return l.HasParking }, "parking miejsce postojowe postój"},
	{func(l Listing) *bool { return l.HasBalcony }, "balkon loggia taras zewnętrzna przestrzeń"},
	{func(l Listing) *bool { return l.HasElevator }, "winda elevator dźwig osobowy"},
	{func(l Listing) *bool { return l.HasAirConditioning }, "klimatyzacja AC chłodzenie klima"},
	{func(l Listing) *bool { return l.PetsAllowed }, "zwierzęta dozwolone pets allowed pies kot"},
	{func(l Listing) *bool { return l.Furnished }, "umeblowane furnished meble wyposażone"},
}

func amenitiesText(l Listing) string {
	var parts []string
	for _, a := range amenityPhrases {
		if v := a.flag(l); v != nil && *v {
			parts = append(parts, a.phrase)
		}
	}
	return strings.Join(parts, FieldSeparator)
}

func extraText(l Listing) string {
	var parts []string
	if l.MarketType != "" {
		parts = append(parts, "rynek "+l.MarketType)
	}
	if l.Heating != "" {
		parts = append(parts, "ogrzewanie "+l.Heating)
	}
	return strings.Join(parts, FieldSeparator)
}

func formatArea(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
