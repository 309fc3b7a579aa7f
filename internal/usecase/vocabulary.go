package usecase

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

type vocabulary struct {
	TechKeywords    []string `yaml:"tech_keywords"`
	SoftKeywords    []string `yaml:"soft_keywords"`
	DefaultKeywords []string `yaml:"default_keywords"`
	StopWords       []string `yaml:"stop_words"`
}

var (
	vocab       = mustLoadVocabulary()
	stopWordSet = func() map[string]struct{} {
		m := make(map[string]struct{}, len(vocab.StopWords))
		for _, w := range vocab.StopWords {
			m[w] = struct{}{}
		}
		return m
	}()
)

func mustLoadVocabulary() vocabulary {
	var v vocabulary
	if err := yaml.Unmarshal(vocabularyYAML, &v); err != nil {
		panic(fmt.Sprintf("usecase: invalid embedded vocabulary: %v", err))
	}
	return v
}
