package search

import (
	"strings"
	"unicode"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/shutter/internal/domain"
)

// OwnerPrefix switches a filter query from titles to owner IDs
const OwnerPrefix = "@"

// Match is a loaded photo that passed the local filter
type Match struct {
	Index          int // Position in the unfiltered items
	Photo          domain.PhotoSummary
	MatchedIndexes []int // Byte offsets of matched title runes, for highlighting
	Score          int
}

// titleIndex implements sahilm/fuzzy.Source over pre-lowered titles
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// Filter narrows already loaded items for display. It never changes the
// controller's result set. A blank query keeps every item in service order;
// "@name" matches owner IDs; anything else is ranked fuzzy title matching.
func Filter(items []domain.PhotoSummary, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(items))
		for i, p := range items {
			matches[i] = Match{Index: i, Photo: p}
		}
		return matches
	}

	if strings.HasPrefix(query, OwnerPrefix) {
		return filterOwners(items, strings.TrimPrefix(query, OwnerPrefix))
	}

	titles := make(titleIndex, len(items))
	offsets := make([][]int, len(items))
	for i, p := range items {
		titles[i], offsets[i] = foldTitle(p.Title)
	}

	lowered, _ := foldTitle(query)
	found := fuzzy.FindFrom(lowered, titles)
	matches := make([]Match, len(found))
	for i, f := range found {
		orig := make([]int, len(f.MatchedIndexes))
		for j, idx := range f.MatchedIndexes {
			orig[j] = offsets[f.Index][idx]
		}
		matches[i] = Match{
			Index:          f.Index,
			Photo:          items[f.Index],
			MatchedIndexes: orig,
			Score:          f.Score,
		}
	}
	return matches
}

// foldTitle lowers s one rune at a time and returns, for every byte of the
// result, the offset of the rune in s it came from. Lowering can change a
// rune's encoded width, so offsets into the result are not offsets into s.
func foldTitle(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for j := 0; j < n; j++ {
			offsets = append(offsets, i)
		}
	}
	return b.String(), offsets
}

func filterOwners(items []domain.PhotoSummary, owner string) []Match {
	owner = strings.TrimSpace(owner)
	var matches []Match
	for i, p := range items {
		if owner == "" || fuzzysearch.MatchNormalizedFold(owner, p.OwnerID) {
			matches = append(matches, Match{Index: i, Photo: p})
		}
	}
	return matches
}
