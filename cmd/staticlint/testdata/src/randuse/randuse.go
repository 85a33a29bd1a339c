package randuse

import "math/rand"

func global() int {
	return rand.Intn(10) // want `math/rand.Intn uses the global source; pass a \*rand.Rand instead`
}

func injected(r *rand.Rand) int {
	return r.Intn(10)
}

func constructed() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
