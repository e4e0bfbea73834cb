package rtdb

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/kbukum/firekit/errors"
)

// laxEndpoint accepts any string containing https://, a run of word
// characters or ,'"- and then "firebaseio" and "com/" each preceded by any
// single character. The search is unanchored.
//
// Word characters are Unicode Alphabetic, marks, decimal digits, connector
// punctuation and Join_Control. regexp has no class for the Other_Alphabetic
// and Join_Control properties, so foldWordRunes maps those runes to '_'
// before matching.
var laxEndpoint = regexp.MustCompile(`https://[\p{L}\p{Nl}\p{M}\p{Nd}\p{Pc},'"-]+.firebaseio.com/`)

var extraWordRunes = []*unicode.RangeTable{unicode.Other_Alphabetic, unicode.Join_Control}

// foldWordRunes replaces word runes outside the laxEndpoint class with '_',
// which is a word rune and appears in none of the literal parts.
func foldWordRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.In(r, extraWordRunes...) {
			return '_'
		}
		return r
	}, s)
}

// strictEndpoint accepts exactly https://<name>.firebaseio.com/ with a
// hostname-safe name.
var strictEndpoint = regexp.MustCompile(`^https://[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\.firebaseio\.com/$`)

func validateEndpoint(endpoint string, strict bool) error {
	var ok bool
	if strict {
		ok = strictEndpoint.MatchString(endpoint)
	} else {
		ok = laxEndpoint.MatchString(foldWordRunes(endpoint))
	}
	if !ok {
		return apperrors.InvalidEndpoint(endpoint)
	}
	return nil
}
