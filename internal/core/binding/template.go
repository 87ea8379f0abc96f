package binding

import "regexp"

// =============================================================================
// Fact Template Expansion
// =============================================================================

// placeholderRegex matches ${VAR} placeholders in fact templates.
var placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expand replaces every ${VAR} placeholder with vars["VAR"]. Unlike shell
// substitution there is no default syntax and no silent pass-through: a
// placeholder missing from vars fails, because a connection fact must never
// carry a partial value.
func expand(template string, vars map[string]string) (string, string) {
	missing := ""
	out := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		if val, ok := vars[name]; ok {
			return val
		}
		if missing == "" {
			missing = name
		}
		return match
	})
	if missing != "" {
		return "", missing
	}
	return out, ""
}
