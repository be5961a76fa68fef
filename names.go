package main

import (
	"regexp"
	"strings"
)

// Parenthetical tags ride along on names in some exports, e.g.
// "Jane Doe (host)" or "Doe, Jane (FSW)".
var nameParenTagRe = regexp.MustCompile(`\([^)]*\)|（[^）]*）`)

// DisplayName converts "First [Middle] Last" to "Last, First [Middle]".
// Names already containing a separator are returned as-is.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, ",") {
		return name
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	last := parts[len(parts)-1]
	return last + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// MatchKey reduces a name to the form used for cross-source identity:
// parenthetical tags stripped, lowercased, "Last, First" reordered to
// "first last". Two names refer to the same employee iff their keys are
// equal. No typo tolerance is attempted.
func MatchKey(name string) string {
	name = nameParenTagRe.ReplaceAllString(name, " ")
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(name, ","); i >= 0 {
		last := strings.TrimSpace(name[:i])
		first := strings.TrimSpace(name[i+1:])
		name = first + " " + last
	}
	return strings.Join(strings.Fields(name), " ")
}

// FirstName extracts the given name from either display form.
func FirstName(name string) string {
	name = nameParenTagRe.ReplaceAllString(name, " ")
	if i := strings.Index(name, ","); i >= 0 {
		name = name[i+1:]
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
