// Package randomizer draws words from an adventure's predefined word lists
// and substitutes {word_list} placeholders in content templates.
package randomizer

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_.]+)\}`)

// RandomWord picks a random word from the named word list. When
// categoryName is empty, words from every category are pooled. Returns
// false when the list or category holds no words.
func RandomWord(rng *rand.Rand, adventure domain.Adventure, wordListName, categoryName string) (string, bool) {
	var wordList *domain.WordList
	for i := range adventure.WordLists {
		if adventure.WordLists[i].Name == wordListName {
			wordList = &adventure.WordLists[i]
			break
		}
	}
	if wordList == nil {
		return "", false
	}

	var words []string
	if categoryName != "" {
		words = wordList.Categories[categoryName]
	} else {
		for _, categoryWords := range wordList.Categories {
			words = append(words, categoryWords...)
		}
	}
	if len(words) == 0 {
		return "", false
	}

	return words[rng.Intn(len(words))], true
}

// WordPrompt builds a prompt asking the narrator to invent a word when the
// adventure has no predefined list for it.
func WordPrompt(wordListName, categoryName, context string) string {
	categoryPart := ""
	if categoryName != "" {
		categoryPart = fmt.Sprintf(" in the %s category", categoryName)
	}
	contextPart := ""
	if context != "" {
		contextPart = fmt.Sprintf(" for a %s", context)
	}
	return fmt.Sprintf(
		"Generate a unique %s%s%s. Return only the word/name, no explanation.",
		strings.ReplaceAll(wordListName, "_", " "), categoryPart, contextPart,
	)
}

// ProcessTemplate substitutes {word_list} and {word_list.category}
// placeholders with random words. Placeholders that resolve to nothing are
// left verbatim.
func ProcessTemplate(rng *rand.Rand, template string, adventure domain.Adventure) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		placeholder := strings.Trim(match, "{}")

		wordListName := placeholder
		categoryName := ""
		if dot := strings.Index(placeholder, "."); dot >= 0 {
			wordListName = placeholder[:dot]
			categoryName = placeholder[dot+1:]
		}

		word, ok := RandomWord(rng, adventure, wordListName, categoryName)
		if !ok {
			return match
		}
		return word
	})
}
