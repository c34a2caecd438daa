package templates

import (
	"strconv"
	"strings"
)

// prefixedStrings renders "T0, T1, T2" for prefix "T" and count 3.
func prefixedStrings(prefix string, count int) string {
	names := make([]string, count)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return strings.Join(names, ", ")
}
