package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
)

// Deterministic criteria extraction. Covers the highest-signal parts of
// Polish, English, and Russian real-estate queries with fixed keyword and
// pattern tables. It never fails; fields whose rules do not fire stay
// unknown, which is the correct degradation for a structured filter.

// Rent is tested before sale and the first hit wins, so mixed queries like
// "kupić czy wynajem?" resolve to rent rather than flip-flopping.
var rentKeywords = []string{"wynajem", "wynająć", "rent", "аренд", "арендова"}

var saleKeywords = []string{
	"sprzedaż", "sprzedaz", "sprzedać", "sprzedac",
	"kupić", "kupic", "kupit", "kup",
	"sale", "buy", "purchase",
	"продаж", "купи", "купит", "купить",
}

// roomPatterns are ordered: the first matching pattern decides the count.
// Digit forms come before lexical forms of the same count.
var roomPatterns = []struct {
	re    *regexp.Regexp
	rooms int
}{
	{regexp.MustCompile(`\b1\s*pok`), 1},
	{regexp.MustCompile(`kawalerka`), 1},
	{regexp.MustCompile(`studio`), 1},
	{regexp.MustCompile(`\b2\s*pok`), 2},
	{regexp.MustCompile(`dwupokojowe`), 2},
	{regexp.MustCompile(`\b3\s*pok`), 3},
	{regexp.MustCompile(`trzypokojowe`), 3},
	{regexp.MustCompile(`\b4\s*pok`), 4},
	{regexp.MustCompile(`czteropokojowe`), 4},
}

var (
	maxPriceRe = regexp.MustCompile(`do\s+(\d+)`)
	minPriceRe = regexp.MustCompile(`od\s+(\d+)`)
)

// districtGazetteer maps each recognized Warsaw district to the lowercase,
// diacritic-folded stems it appears under in queries. Polish case endings
// change the surface form ("na Mokotowie", "w Śródmieściu"), so stems match
// as word prefixes in the folded query, not as whole words.
type districtEntry struct {
	name  string
	stems []string
}

var districtGazetteer = []districtEntry{
	{"Mokotów", []string{"mokotow"}},
	{"Praga", []string{"praga", "pragi", "pradze"}},
	{"Bielany", []string{"bielan"}},
	{"Wilanów", []string{"wilanow"}},
	{"Wola", []string{"wola", "woli"}},
	{"Ursynów", []string{"ursynow"}},
	{"Śródmieście", []string{"srodmiesci"}},
	{"Centrum", []string{"centrum"}},
	{"Ochota", []string{"ochota", "ochoty", "ochocie"}},
	{"Żoliborz", []string{"zoliborz"}},
	{"Bemowo", []string{"bemow"}},
	{"Włochy", []string{"wlochy", "wlochach"}},
	{"Targówek", []string{"targowek", "targowku"}},
	{"Rembertów", []string{"rembertow"}},
	{"Wesoła", []string{"wesola", "wesolej"}},
	{"Białołęka", []string{"bialolek", "bialolece"}},
	{"Ursus", []string{"ursus"}},
	{"Wawer", []string{"wawer", "wawrze"}},
}

var diacriticFolder = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
)

// Rules is the deterministic extractor used when no extraction model is
// configured or the model produced no structured output.
type Rules struct{}

// NewRules creates the rules extractor.
func NewRules() *Rules {
	return &Rules{}
}

// Apply runs the rule tables over a query.
func (r *Rules) Apply(query string) criteria.Criteria {
	var c criteria.Criteria
	q := strings.ToLower(query)

	c.Transaction = detectTransaction(q)

	for _, p := range roomPatterns {
		if p.re.MatchString(q) {
			rooms := p.rooms
			c.RoomCount = &rooms
			break
		}
	}

	if m := maxPriceRe.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			c.MaxPrice = &v
		}
	}
	if m := minPriceRe.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			c.MinPrice = &v
		}
	}

	if d := detectDistrict(q); d != "" {
		c.District = &d
	}

	return c
}

func detectTransaction(q string) criteria.Transaction {
	for _, kw := range rentKeywords {
		if strings.Contains(q, kw) {
			return criteria.TransactionRent
		}
	}
	for _, kw := range saleKeywords {
		if strings.Contains(q, kw) {
			return criteria.TransactionSale
		}
	}
	return criteria.TransactionUnspecified
}

// detectDistrict picks the gazetteer entry that occurs earliest in the
// query; ties on position go to the earlier gazetteer entry.
func detectDistrict(q string) string {
	folded := diacriticFolder.Replace(q)
	best := ""
	bestPos := -1
	for _, d := range districtGazetteer {
		for _, stem := range d.stems {
			pos := stemIndex(folded, stem)
			if pos < 0 {
				continue
			}
			if bestPos < 0 || pos < bestPos {
				best = d.name
				bestPos = pos
			}
		}
	}
	return best
}

// stemIndex finds the first occurrence of stem that starts a word. The
// right side may continue into a case ending, so only the left boundary is
// checked.
func stemIndex(s, stem string) int {
	from := 0
	for {
		i := strings.Index(s[from:], stem)
		if i < 0 {
			return -1
		}
		pos := from + i
		if pos == 0 || !isLetter(s[pos-1]) {
			return pos
		}
		from = pos + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
