package rerank

import "strings"

// synonymClusters expands high-signal real-estate vocabulary before the
// query is embedded, pulling Polish, English, and Russian phrasings of the
// same intent closer together in embedding space. Clusters are ordered and
// the first cluster containing a word wins, keeping the expansion
// deterministic for a given query.
var synonymClusters = [][]string{
	{"mieszkanie", "kwatera", "apartamenty", "flat", "dom"},
	{"pokój", "room", "pomieszczenie"},
	{"jednopokojowe", "kawalerka", "studio", "1-pokojowe"},
	{"dwupokojowe", "2-pokojowe", "two bedroom"},
	{"trzypokojowe", "3-pokojowe", "three bedroom"},
	{"cena", "koszt", "price", "kosztorys"},
	{"tanie", "niedrogo", "tanio", "cheap", "dostępne"},
	{"drogie", "drogo", "expensive", "premium"},
	{"centrum", "center", "centralna część", "śródmieście"},
	{"blisko", "obok", "niedaleko", "near", "w pobliżu"},
	{"warszawa", "warsaw", "stolica"},
	{"kraków", "krakow", "królewskie miasto"},
	{"balkon", "taras", "zewnętrzna przestrzeń"},
	{"winda", "elevator", "dźwig"},
	{"parking", "garaż", "miejsce postojowe"},
	{"zwierzęta", "pets", "pies", "kot", "zwierzęta domowe"},
	{"umeblowane", "furnished", "meble", "wyposażone"},
}

// expandQuery appends the synonym cluster of every recognized word after
// the word itself. Unrecognized words pass through untouched, so the
// expansion never loses information.
func expandQuery(query string) string {
	words := strings.Fields(strings.ToLower(query))
	var expanded []string

	for _, word := range words {
		expanded = append(expanded, word)
		for _, cluster := range synonymClusters {
			if !contains(cluster, word) {
				continue
			}
			for _, v := range cluster {
				if v != word {
					expanded = append(expanded, v)
				}
			}
			break
		}
	}

	return strings.Join(expanded, " ")
}

func contains(values []string, w string) bool {
	for _, v := range values {
		if v == w {
			return true
		}
	}
	return false
}
