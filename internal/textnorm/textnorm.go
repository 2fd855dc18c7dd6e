// Package textnorm lowercases, cleans, tokenizes and stems free text for
// skill comparison and local similarity.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// Clean lowercases s, folds accents and drops every character that is not a
// letter, digit, underscore or whitespace. Runs of whitespace collapse to one
// space.
func Clean(s string) string {
	s = strings.ToLower(foldAccents(s))
	s = reNonWord.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens splits the cleaned form of s into words.
func Tokens(s string) []string {
	cleaned := Clean(s)
	if cleaned == "" {
		return []string{}
	}
	return strings.Split(cleaned, " ")
}

// StemmedTokens is Tokens with every word reduced to its Porter2 stem.
func StemmedTokens(s string) []string {
	tokens := Tokens(s)
	for i, token := range tokens {
		tokens[i] = Stem(token)
	}
	return tokens
}

// Stem reduces a single lowercase word to its stem.
func Stem(word string) string {
	if word == "" {
		return ""
	}
	return english.Stem(word, false)
}

// Normalize returns the stemmed tokens of s joined by single spaces.
func Normalize(s string) string {
	return strings.Join(StemmedTokens(s), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
