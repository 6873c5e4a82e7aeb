package realmlist

import "strings"

const realmlistPrefix = "set realmlist "

type directiveKey int

const (
	keyNone directiveKey = iota
	keyRealmlist
	keyAccountName
)

// classify reports which directive a line carries, matched case-insensitively
// on the trimmed line prefix. "SET portal" is an alias some client builds use
// for the realmlist host, so both collapse onto the realmlist key.
func classify(line string) directiveKey {
	upper := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(upper, "SET REALMLIST "), strings.HasPrefix(upper, "SET PORTAL "):
		return keyRealmlist
	case strings.HasPrefix(upper, "SET ACCOUNTNAME "):
		return keyAccountName
	default:
		return keyNone
	}
}

// MergeDirectives rewrites the realmlist and accountName directives inside
// existing config text while keeping every other line in place and in order.
//
// Recognized lines are rewritten where they stand; a directive with no
// pre-existing line is appended. When accountName is nil or empty, matching
// lines are rewritten to the empty string and dropped by the final filter, so
// no stale accountName survives. Duplicate directive lines are all rewritten
// to the same canonical value rather than collapsed, which keeps both
// first-match and last-match client parsers on the new host.
//
// Output lines are joined with CRLF, the separator the client expects. The
// function is idempotent: merging its own output with the same arguments
// changes nothing.
func MergeDirectives(existing *string, host string, accountName *string) string {
	newRealmlist := realmlistPrefix + strings.TrimSpace(host)
	newAccount := ""
	if accountName != nil && *accountName != "" {
		newAccount = `SET accountName "` + *accountName + `"`
	}

	var lines []string
	hadRealmlist := false
	hadAccount := false
	if existing != nil {
		for _, line := range splitLines(*existing) {
			switch classify(line) {
			case keyRealmlist:
				hadRealmlist = true
				lines = append(lines, newRealmlist)
			case keyAccountName:
				hadAccount = true
				lines = append(lines, newAccount)
			default:
				lines = append(lines, line)
			}
		}
	}

	if !hadRealmlist {
		lines = append(lines, newRealmlist)
	}
	if !hadAccount && newAccount != "" {
		lines = append(lines, newAccount)
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\r\n")
}

// splitLines splits on LF, tolerating CRLF input. A trailing newline does not
// produce a final empty element.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	return raw
}
