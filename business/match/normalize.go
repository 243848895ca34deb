package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, strips quotes and punctuation, and collapses
// whitespace. Accents are preserved here; stripAccents provides the
// secondary comparison form.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '&' || r == '+':
			// connective punctuation carries meaning, keep it
			b.WriteRune(r)
		default:
			// quotes, commas, slashes, dollar signs etc. drop out,
			// leaving word boundaries intact
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripAccents removes combining marks: "Beyoncé" -> "Beyonce".
func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// collabMarkers are the separators that indicate a collaboration billing.
var collabMarkers = []string{" feat ", " feat. ", " ft ", " ft. ", " featuring ", " with ", " x ", " vs ", " vs. ", " & ", " + "}

// hasCollabMarker reports whether the (already normalized) name reads like a
// collaboration billing.
func hasCollabMarker(normalized string) bool {
	padded := " " + normalized + " "
	for _, m := range collabMarkers {
		if strings.Contains(padded, m) {
			return true
		}
	}
	return false
}

// splitCollaborators breaks a collaboration billing into individual acts.
func splitCollaborators(normalized string) []string {
	padded := " " + normalized + " "
	for _, m := range collabMarkers {
		padded = strings.ReplaceAll(padded, m, "|")
	}

	parts := strings.Split(padded, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
