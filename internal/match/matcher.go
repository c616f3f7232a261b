// Package match implements the FAQ matching engine: an in-memory corpus of
// question/answer pairs scored against a query by token-set overlap, with
// stop-word filtering, one-level synonym expansion, and a confidence
// threshold. The engine never fails on string input; empty corpus and
// below-threshold matches are normal result values.
package match

import "github.com/hyperjump/kotae/internal/normalize"

// DefaultThreshold is the minimum Jaccard score for a match to be accepted.
const DefaultThreshold = 0.15

// NoFAQsAnswer is returned when FindAnswer is called on an empty corpus.
const NoFAQsAnswer = "No FAQs loaded yet! Please add some FAQs first."

// NoMatchAnswer is returned when no entry scores at or above the threshold.
const NoMatchAnswer = "I couldn't find a good answer to that question. Could you rephrase it?"

// Entry is one stored question/answer pair. NormalizedQuestion is derived
// from Question at insertion time and is the only field used for scoring.
type Entry struct {
	Question           string
	Answer             string
	NormalizedQuestion string
}

// Result is the outcome of a FindAnswer call. The three outcomes are
// distinguishable without a status code: no corpus (Confidence 0, nil
// MatchedQuestion), no good match (Confidence = best score seen, nil
// MatchedQuestion), and match (MatchedQuestion set).
type Result struct {
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion *string `json:"matched_question"`
}

// Matcher owns an append-only corpus of entries and scores queries against
// it. It is not safe for concurrent use; callers that share a Matcher across
// goroutines must add their own synchronization.
type Matcher struct {
	entries []Entry
}

// NewMatcher returns an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// AddEntry appends a question/answer pair to the corpus. The normalized
// question is computed eagerly. No validation is performed: an empty
// question is legal and simply normalizes to an empty token set, which
// makes the entry effectively unmatchable.
func (m *Matcher) AddEntry(question, answer string) {
	m.entries = append(m.entries, Entry{
		Question:           question,
		Answer:             answer,
		NormalizedQuestion: normalize.Normalize(question),
	})
}

// Len returns the number of entries in the corpus.
func (m *Matcher) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the corpus in insertion order.
func (m *Matcher) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// FindAnswer scores every entry against query and returns the best match,
// provided its Jaccard score is at least threshold. Entries are scanned in
// insertion order with a strict greater-than comparison, so on an exact tie
// the first-added entry wins. A threshold <= 0 is replaced by
// DefaultThreshold.
func (m *Matcher) FindAnswer(query string, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if len(m.entries) == 0 {
		return Result{Answer: NoFAQsAnswer, Confidence: 0.0}
	}

	querySet := scoringSet(query)

	var best *Entry
	bestScore := 0.0
	for i := range m.entries {
		entrySet := scoringSetNormalized(m.entries[i].NormalizedQuestion)
		score := jaccard(querySet, entrySet)
		if score > bestScore {
			bestScore = score
			best = &m.entries[i]
		}
	}

	if best == nil || bestScore < threshold {
		return Result{Answer: NoMatchAnswer, Confidence: bestScore}
	}
	matched := best.Question
	return Result{
		Answer:          best.Answer,
		Confidence:      bestScore,
		MatchedQuestion: &matched,
	}
}

// scoringSet builds the token set used for scoring: normalize, filter stop
// words, fall back to the unfiltered set when filtering leaves nothing
// (e.g. a stop-word-only query), then expand synonyms.
func scoringSet(text string) map[string]struct{} {
	return scoringSetNormalized(normalize.Normalize(text))
}

// scoringSetNormalized is scoringSet for text that is already normalized,
// so cached entry questions are not normalized twice.
func scoringSetNormalized(normalized string) map[string]struct{} {
	raw := normalize.TokenSet(normalized)
	filtered := removeStopWords(raw)
	if len(filtered) == 0 {
		filtered = raw
	}
	return ExpandWithSynonyms(filtered)
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0.0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
