package funfact

import "math/rand"

// entropy builds a deterministic pseudo-random buffer. Tests own their
// entropy explicitly; there is no shared global noise buffer.
func entropy(seed int64, n int) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n)
	r.Read(buf)
	return buf
}
