package transform

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
)

const keyLength = 12

// KeyGenerator returns the _key values of array members and blocks within one document.
type KeyGenerator interface {
	Key() string
}

// KeySource returns the key generator for the document identified by seed.
type KeySource func(seed string) KeyGenerator

type randomKeys struct{}

func (randomKeys) Key() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:keyLength]
}

// RandomKeys returns a generator of random keys. The seed is ignored.
func RandomKeys(string) KeyGenerator {
	return randomKeys{}
}

type stableKeys struct {
	seed    string
	counter int
}

func (s *stableKeys) Key() string {
	s.counter++
	return util.Hash(s.seed, strconv.Itoa(s.counter))[:keyLength]
}

// StableKeys returns a generator whose keys depend only on the seed and the call order, so that
// transforming the same entry twice produces the same document.
func StableKeys(seed string) KeyGenerator {
	return &stableKeys{seed: seed}
}
