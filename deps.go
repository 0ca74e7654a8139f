// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
package ganko

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

// Identifiers returns the identifier-like tokens of expr in order of first
// appearance. Tokens directly after a '.' are member names and skipped.
func Identifiers(expr string) []string {
	var res []string
	seen := make(map[string]bool)
	for i := 0; i < len(expr); {
		if !isIdentPart(expr[i]) {
			i++
			continue
		}
		start := i
		for i < len(expr) && isIdentPart(expr[i]) {
			i++
		}
		if !isIdentStart(expr[start]) {
			continue // number
		}
		if start > 0 && expr[start-1] == '.' {
			continue
		}
		if tok := expr[start:i]; !seen[tok] {
			seen[tok] = true
			res = append(res, tok)
		}
	}
	return res
}

// Dependencies returns the declared props referenced by expr. Unknown names
// are dropped; they can only fail later when the expression is evaluated.
func Dependencies(expr string, declared []string) []string {
	var res []string
	for _, id := range Identifiers(expr) {
		for _, d := range declared {
			if id == d {
				res = append(res, id)
				break
			}
		}
	}
	return res
}
