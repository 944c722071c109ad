package util

import (
	"encoding/json"
	"os"
)

// JSONStringify converts any value to a JSON string.
func JSONStringify(val any) string {
	buf, _ := json.Marshal(val)
	return string(buf)
}

// Exists returns true if the filename or directory specified by fn exists.
func Exists(fn string) bool {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return false
	}
	return true
}

// SliceContains returns true if the slice contains the value.
func SliceContains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}

// Compact returns a new slice without the nil values.
func Compact[T any](vals []*T) []*T {
	res := make([]*T, 0, len(vals))
	for _, v := range vals {
		if v != nil {
			res = append(res, v)
		}
	}
	return res
}

// Intersect returns the values of a that are also in b, keeping the order of a.
func Intersect(a []string, b []string) []string {
	res := make([]string, 0, len(a))
	for _, v := range a {
		if SliceContains(b, v) {
			res = append(res, v)
		}
	}
	return res
}
