// docstring.go — extraction of textual constraints from a routine's
// structured doc text. Line grammar (leading/trailing whitespace
// ignored, matched per line across the whole text):
//
//	:param <type-expr> <name>: <description>  -> constraints[name]
//	:type <name>: <type-expr>                 -> constraints[name]
//	:returns <type-expr>: <description>       -> constraints[ReturnsKey]
//	:rtype: <type-expr>                       -> constraints[ReturnsKey]
//
// Later forms override earlier ones for the same name, so an explicit
// ":type" line beats a ":param" line and ":rtype" beats ":returns".

package contract

import (
	"regexp"
	"strings"
)

var (
	paramRe   = regexp.MustCompile(`(?m)^[ \t]*:param[ \t]+([^:\n\r]+).*$`)
	returnsRe = regexp.MustCompile(`(?m)^[ \t]*:returns[ \t]+([^:\n\r]+):[ \t]*(.*?)[ \t]*$`)
	typeRe    = regexp.MustCompile(`(?m)^[ \t]*:type[ \t]+([^:\n\r]+):[ \t]*(.*?)[ \t]*$`)
	rtypeRe   = regexp.MustCompile(`(?m)^[ \t]*:rtype[ \t]*:[ \t]*(.*?)[ \t]*$`)
)

// parseDoc collects name→type-expression pairs from doc. Unrecognized
// lines are ignored; an empty doc yields an empty map.
func parseDoc(doc string) map[string]string {
	if doc == "" {
		return nil
	}
	constraints := make(map[string]string)

	// ":param <type-expr> <name>" — the name is the last space-separated
	// token, everything before it is the type expression.
	for _, m := range paramRe.FindAllStringSubmatch(doc, -1) {
		fields := strings.Fields(m[1])
		if len(fields) < 2 {
			continue
		}
		name := fields[len(fields)-1]
		constraints[name] = strings.Join(fields[:len(fields)-1], " ")
	}

	for _, m := range returnsRe.FindAllStringSubmatch(doc, -1) {
		constraints[ReturnsKey] = strings.TrimSpace(m[1])
	}

	for _, m := range typeRe.FindAllStringSubmatch(doc, -1) {
		constraints[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}

	for _, m := range rtypeRe.FindAllStringSubmatch(doc, -1) {
		constraints[ReturnsKey] = strings.TrimSpace(m[1])
	}

	return constraints
}
