package match

// synonyms maps a token to tokens considered interchangeable with it.
// The table is hand-authored: it is not guaranteed symmetric or transitive
// (e.g. "time" lists "schedule" but "schedule" has no entry), so expansion
// is driven purely by direct lookups. Immutable after init.
var synonyms = map[string][]string{
	"sign":     {"register", "signup", "join", "enroll"},
	"register": {"sign", "signup", "join", "enroll"},
	"signup":   {"sign", "register", "join", "enroll"},
	"pay":      {"fee", "cost", "price", "money", "charge"},
	"fee":      {"pay", "cost", "price", "money", "charge"},
	"cost":     {"pay", "fee", "price", "money", "charge"},
	"start":    {"schedule", "time", "begin", "when"},
	"time":     {"schedule", "start", "when"},
	"when":     {"time", "schedule", "start"},
	"where":    {"venue", "location", "place"},
	"venue":    {"where", "location", "place"},
	"location": {"where", "venue", "place"},
}

// ExpandWithSynonyms returns the union of tokens with the synonym table's
// value set for every token that has an entry. Expansion is one level deep:
// tokens added by expansion are not themselves re-expanded.
func ExpandWithSynonyms(tokens map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(tokens))
	for t := range tokens {
		expanded[t] = struct{}{}
	}
	for t := range tokens {
		for _, syn := range synonyms[t] {
			expanded[syn] = struct{}{}
		}
	}
	return expanded
}
