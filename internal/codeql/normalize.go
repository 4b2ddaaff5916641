package codeql

import "strings"

// StripQuotes removes every literal double-quote character from s. Table
// fields keep their raw quoted text; this is applied only where values are
// compared, never to stored records.
func StripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// SimpleName reduces a possibly namespace-qualified symbol to its trailing
// segment: "Foo::Bar::baz" becomes "baz". Names without "::" pass through.
func SimpleName(s string) string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		return s[i+2:]
	}
	return s
}

// normalizeID strips quotes and surrounding whitespace from an id token.
func normalizeID(s string) string {
	return strings.TrimSpace(StripQuotes(s))
}
