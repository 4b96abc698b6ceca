package viewsql

import "strings"

// quoteIdent wraps a raw identifier in double quotes. Every
// user-supplied column name is emitted verbatim this way; identifier
// safety is the caller's responsibility (spec.md §3, §6).
func quoteIdent(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte('"')
	b.WriteString(name)
	b.WriteByte('"')
	return b.String()
}

// escapeAlias rewrites name the way every synthesized column alias is
// rewritten: embedded double quotes are doubled, then underscores
// become hyphens. The order matches the upstream
// col.replace('"', "\"\"").replace('_', "-") exactly; spec.md notes
// this substitution is undocumented but downstream consumers may
// depend on its exact form, so it is preserved byte-for-byte.
func escapeAlias(name string) string {
	name = strings.ReplaceAll(name, `"`, `""`)
	name = strings.ReplaceAll(name, "_", "-")
	return name
}
