// Package validate holds the syntactic field validators used by client
// registration. All predicates are pure; list values are separated by single
// spaces and a comma is never a valid separator.
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// IsEmail reports whether s is a single syntactically valid e-mail address.
// A comma or a second space-separated address is a failure, not a list.
func IsEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, ", ") {
		return false
	}
	return v.Var(s, "required,email") == nil
}

// IsURL reports whether s is a single absolute URL with a scheme. A space
// means the caller supplied more than one value, which is a failure where a
// single URL is expected.
func IsURL(s string) bool {
	if s == "" || strings.Contains(s, " ") {
		return false
	}
	return v.Var(s, "required,url") == nil
}

// IsEmailList reports whether s is one or more valid e-mail addresses
// separated by single spaces. An empty string is not a valid list.
func IsEmailList(s string) bool {
	return isList(s, IsEmail)
}

// IsURLList reports whether s is one or more valid absolute URLs separated by
// single spaces. An empty string is not a valid list.
func IsURLList(s string) bool {
	return isList(s, IsURL)
}

// SplitList splits a previously validated list into its values.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func isList(s string, valid func(string) bool) bool {
	if s == "" || strings.Contains(s, ",") {
		return false
	}
	for _, tok := range strings.Split(s, " ") {
		// An empty token means doubled or leading/trailing separators.
		if tok == "" || !valid(tok) {
			return false
		}
	}
	return true
}
