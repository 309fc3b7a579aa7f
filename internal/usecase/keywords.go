package usecase

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/resumind/interview-insight/internal/domain"
)

const maxKeywords = 10

// AnalyzeKeywordCoverage derives a keyword set from the job description and
// measures how many of those keywords appear in the candidate's answers.
// A blank job description yields an empty keyword list and coverage 0.
func AnalyzeKeywordCoverage(pairs []domain.QAPair, jdContent string) domain.KeywordCoverage {
	if strings.TrimSpace(jdContent) == "" {
		return domain.KeywordCoverage{Keywords: []domain.KeywordHit{}, CoverageRate: 0}
	}

	keywords := extractJDKeywords(jdContent)

	answers := make([]string, 0, len(pairs))
	for _, p := range pairs {
		answers = append(answers, p.Answer)
	}
	allAnswers := strings.Join(answers, " ")

	hits := make([]domain.KeywordHit, 0, len(keywords))
	mentioned := 0
	for _, kw := range keywords {
		freq := countWholeWord(allAnswers, kw)
		if freq > 0 {
			mentioned++
		}
		hits = append(hits, domain.KeywordHit{Keyword: kw, Mentioned: freq > 0, Frequency: freq})
	}

	rate := 0
	if len(keywords) > 0 {
		rate = int(math.Round(float64(mentioned) / float64(len(keywords)) * 100))
	}
	return domain.KeywordCoverage{Keywords: hits, CoverageRate: rate}
}

// extractJDKeywords scans the job description against the static vocabularies.
// Latin technical terms match case-insensitively; soft-skill terms are CJK and
// match verbatim. Vocabulary iteration order is preserved, technical first,
// capped at maxKeywords, with a default set when nothing matches.
func extractJDKeywords(jdContent string) []string {
	jdLower := strings.ToLower(jdContent)

	found := make([]string, 0, maxKeywords)
	for _, kw := range vocab.TechKeywords {
		if strings.Contains(jdLower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	for _, kw := range vocab.SoftKeywords {
		if strings.Contains(jdContent, kw) {
			found = append(found, kw)
		}
	}
	if len(found) == 0 {
		found = append(found, vocab.DefaultKeywords...)
	}
	if len(found) > maxKeywords {
		found = found[:maxKeywords]
	}
	return found
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// countWholeWord counts case-insensitive, non-overlapping occurrences of word
// in text delimited by Unicode word boundaries. A boundary exists where the
// wordness of adjacent runes differs, with out-of-text treated as non-word,
// so "react" matches inside "used React daily" but not inside "reactive".
func countWholeWord(text, word string) int {
	if word == "" {
		return 0
	}
	lt := strings.ToLower(text)
	lw := strings.ToLower(word)
	firstKw, _ := utf8.DecodeRuneInString(lw)
	lastKw, _ := utf8.DecodeLastRuneInString(lw)

	count := 0
	off := 0
	for {
		i := strings.Index(lt[off:], lw)
		if i < 0 {
			return count
		}
		start := off + i
		end := start + len(lw)

		startOK := true
		if isWordRune(firstKw) {
			if prev, size := utf8.DecodeLastRuneInString(lt[:start]); size > 0 && isWordRune(prev) {
				startOK = false
			}
		}
		endOK := true
		if isWordRune(lastKw) {
			if next, size := utf8.DecodeRuneInString(lt[end:]); size > 0 && isWordRune(next) {
				endOK = false
			}
		}
		if startOK && endOK {
			count++
		}
		off = end
	}
}
