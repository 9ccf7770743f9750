package text

import (
	"strings"
	"unicode"

	"github.com/tsawler/redline/align"
)

type tokenClass int

const (
	classWord tokenClass = iota
	classSpace
	classPunct
)

func classOf(r rune) tokenClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	default:
		return classPunct
	}
}

// Tokenize splits a string into maximal runs of word characters,
// whitespace, and punctuation. Concatenating the tokens reproduces the
// input exactly.
func Tokenize(s string) []string {
	var tokens []string
	runes := []rune(s)
	for i := 0; i < len(runes); {
		cls := classOf(runes[i])
		j := i + 1
		for j < len(runes) && classOf(runes[j]) == cls {
			j++
		}
		tokens = append(tokens, string(runes[i:j]))
		i = j
	}
	return tokens
}

// TermDiff aligns the tokens of two strings and returns the non-space
// terms present only in the revised string (added) and only in the
// original (deleted).
func TermDiff(original, revised string) (added, deleted []string) {
	a := Tokenize(original)
	b := Tokenize(revised)
	for _, op := range align.NewMatcher(a, b).Opcodes() {
		switch op.Tag {
		case align.OpInsert, align.OpReplace:
			added = append(added, nonSpace(b[op.J1:op.J2])...)
		}
		switch op.Tag {
		case align.OpDelete, align.OpReplace:
			deleted = append(deleted, nonSpace(a[op.I1:op.I2])...)
		}
	}
	return added, deleted
}

func nonSpace(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}
