package validate

import "strings"

// Email applies the same minimal check the rest of the system uses: a
// non-empty address containing "@". Anything stricter belongs to the
// mail-delivery layer.
func Email(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && strings.Contains(v, "@")
}

func Required(v string) bool {
	return strings.TrimSpace(v) != ""
}
