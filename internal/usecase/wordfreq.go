package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/resumind/interview-insight/internal/domain"
)

const maxFrequentWords = 10

// Candidate words are maximal runs of 2+ CJK ideographs. Latin tokens are
// intentionally ignored; the frequent-word panel targets CJK answer text.
var cjkWordRE = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,}`)

// AnalyzeFrequentWords tokenizes the concatenated answer text and ranks
// recurring terms after stop-word removal. The result holds at most ten
// entries, descending by count, ties kept in first-encountered order.
func AnalyzeFrequentWords(pairs []domain.QAPair) []domain.WordCount {
	if len(pairs) == 0 {
		return []domain.WordCount{}
	}

	answers := make([]string, 0, len(pairs))
	for _, p := range pairs {
		answers = append(answers, p.Answer)
	}
	allText := strings.Join(answers, " ")

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, w := range cjkWordRE.FindAllString(allText, -1) {
		if _, stop := stopWordSet[w]; stop {
			continue
		}
		// already guaranteed by the extraction pattern; kept as a guard
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxFrequentWords {
		order = order[:maxFrequentWords]
	}

	out := make([]domain.WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, domain.WordCount{Word: w, Count: counts[w]})
	}
	return out
}
