package util

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	gstr "github.com/savsgio/gotils/strconv"
)

// Hash will take one or more values and return a xxhash calculated value for the input
func Hash(vals ...interface{}) string {
	h := xxhash.New()
	for _, v := range vals {
		h.Write(gstr.S2B(fmt.Sprintf("%+v", v)))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// HashJSON returns the xxhash of the JSON encoding of val. Map keys are sorted by the encoder so equal values hash equally.
func HashJSON(val any) string {
	return fmt.Sprintf("%x", xxhash.Sum64(gstr.S2B(JSONStringify(val))))
}
