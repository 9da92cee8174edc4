package wikidata

import "strings"

type Rank string

const (
	Preferred  Rank = "Preferred"
	Normal     Rank = "Normal"
	Deprecated Rank = "Deprecated"
	Unknown    Rank = "Unknown"
)

// ClassifyRank maps a rank label ("Normal") or wikibase rank IRI
// (http://wikiba.se/ontology#NormalRank) to a Rank. Anything else is Unknown.
func ClassifyRank(raw string) Rank {
	s := raw
	if i := strings.LastIndexAny(s, "#/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, "Rank")
	switch s {
	case "Preferred":
		return Preferred
	case "Normal":
		return Normal
	case "Deprecated":
		return Deprecated
	default:
		return Unknown
	}
}
