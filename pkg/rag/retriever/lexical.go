package retriever

import (
	"fmt"
	"sort"
	"strings"

	"grant-advisor-be/pkg/knowledge"
)

// DefaultLimit is the number of chunks embedded into the system prompt.
const DefaultLimit = 3

// Result is one retrieved chunk with its overlap score and provenance.
type Result struct {
	Score   int
	Content string
	Source  string
}

// Retrieve scores every chunk by bigram containment: the number of
// 2-rune substrings of the query that occur anywhere in the chunk
// content. Working on raw character bigrams (no tokenization) keeps the
// signal meaningful for Japanese text, which has no word delimiters.
//
// Chunks scoring zero are dropped. The sort is stable so that equal
// scores keep corpus order. A query shorter than 2 runes has no bigrams
// and always returns an empty result.
func Retrieve(query string, corpus []knowledge.Chunk, limit int) []Result {
	runes := []rune(query)
	if len(runes) < 2 {
		return nil
	}

	bigrams := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		bigrams = append(bigrams, string(runes[i:i+2]))
	}

	var scored []Result
	for _, chunk := range corpus {
		score := 0
		for _, bg := range bigrams {
			if strings.Contains(chunk.Content, bg) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, Result{
				Score:   score,
				Content: chunk.Content,
				Source:  chunk.Source,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Render formats results for prompt embedding, each prefixed with its
// source document and separated by a divider line. An empty result set
// renders to an empty string; the prompt builder substitutes the
// no-case-data placeholder.
func Render(results []Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("[出典: %s]\n%s", r.Source, r.Content))
	}
	return strings.Join(parts, "\n---\n")
}
