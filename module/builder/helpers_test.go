package builder_test

import (
	"sync"
	"time"

	"github.com/onflow/starkhash/model/hash"
)

func additiveHasher() hash.Hasher {
	return hash.Additive{}
}

// recorder keeps the labels reported to it.
type recorder struct {
	mu       sync.Mutex
	schemes  []string
	formulas []string
}

func (r *recorder) CommitmentsComputed(scheme string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemes = append(r.schemes, scheme)
}

func (r *recorder) BlockSealed(formula string, _ uint64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formulas = append(r.formulas, formula)
}

func (r *recorder) BlockValidated()        {}
func (r *recorder) ValidationFailed(string) {}
