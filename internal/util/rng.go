package util

import (
	"hash/fnv"
	"math/rand"
)

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Derive returns an independent stream for the named consumer so that, e.g.,
// drawing unit IDs never shifts the sequence used for upgrade rolls.
func Derive(seed int64, stream string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stream))
	return New(seed ^ int64(h.Sum64()))
}
