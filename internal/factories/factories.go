package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
)

var fake = faker.New()

// Reseed makes every factory draw from a deterministic source.
func Reseed(seed int64) {
	fake = faker.NewWithSeed(rand.NewSource(seed))
}

func pick(options []string) string {
	return options[fake.IntBetween(0, len(options)-1)]
}
