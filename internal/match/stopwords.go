package match

// stopWords are common tokens excluded from scoring as semantically
// low-information (articles, auxiliary verbs, pronouns, question words).
// Process-wide and immutable after init.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "am": {},
	"be": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "with": {}, "do": {}, "does": {}, "i": {}, "you": {},
	"we": {}, "they": {}, "there": {}, "can": {}, "will": {}, "it": {},
	"what": {}, "how": {}, "when": {}, "where": {},
}

// IsStopWord reports whether token is in the stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// removeStopWords returns a new set with stop words filtered out.
func removeStopWords(tokens map[string]struct{}) map[string]struct{} {
	filtered := make(map[string]struct{}, len(tokens))
	for t := range tokens {
		if _, stop := stopWords[t]; !stop {
			filtered[t] = struct{}{}
		}
	}
	return filtered
}
