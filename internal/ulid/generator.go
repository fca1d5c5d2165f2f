package ulid

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	generatorMu sync.RWMutex
	generator   = DefaultGenerator
)

func defaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id is a canonical, upper-case ULID.
func ValidID(id string) bool {
	parsed, err := ulid.ParseStrict(id)
	return err == nil && parsed.String() == id
}

// GenerateID returns a new ULID used as a block render key.
func GenerateID() string {
	generatorMu.RLock()
	defer generatorMu.RUnlock()
	return generator()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), defaultEntropy()).String()
}

func ResetGenerator() {
	generatorMu.Lock()
	generator = DefaultGenerator
	generatorMu.Unlock()
}

// MockGenerator makes GenerateID return mockValue until ResetGenerator is called.
func MockGenerator(mockValue string) {
	generatorMu.Lock()
	generator = func() string { return mockValue }
	generatorMu.Unlock()
}
