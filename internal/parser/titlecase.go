package parser

import "strings"

// smallWords stay lowercase unless they open the title.
var smallWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "but": {}, "or": {}, "for": {},
	"nor": {}, "on": {}, "at": {}, "to": {}, "by": {}, "of": {}, "in": {},
	"vs": {}, "with": {},
}

// titleCase applies title casing with a small-word exception list.
// Letter+digit tokens ("L2") are uppercased whole. Idempotent.
func (p *Parser) titleCase(text string) string {
	if text == "" {
		return text
	}

	words := strings.Fields(text)
	for i, word := range words {
		switch {
		case p.lib.letterDigit.MatchString(word):
			words[i] = strings.ToUpper(word)
		case i == 0:
			words[i] = capitalize(word)
		default:
			if _, small := smallWords[strings.ToLower(word)]; small {
				words[i] = strings.ToLower(word)
			} else {
				words[i] = capitalize(word)
			}
		}
	}
	return strings.Join(words, " ")
}

// capitalize upcases the first rune and downcases the rest.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
