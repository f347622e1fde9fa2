package util

import "strconv"

// ParseUint converts a route or query parameter, returning 0 on failure.
func ParseUint(s string) uint {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// ParsePositiveInt returns def when s is empty, malformed, or not positive.
func ParsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
