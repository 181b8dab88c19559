package repository

import "strings"

// BusquedaLimite caps party search results.
const BusquedaLimite = 20

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// patronLike turns free text into a case-insensitive substring pattern with
// LIKE wildcards escaped, for use with ESCAPE '\'.
func patronLike(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}
