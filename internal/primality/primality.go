//go:generate mockgen -source=primality.go -destination=mocks/mock_tester.go -package=mocks

// Package primality answers whether the modulus of a p-adic context is
// actually prime and enumerates small primes for batch evaluation.
package primality

import (
	"math/big"
)

// DefaultRounds is the number of Miller-Rabin rounds used by BigTester on top
// of the Baillie-PSW test math/big always runs.
const DefaultRounds = 20

// Tester reports whether n is prime.
type Tester interface {
	IsPrime(n *big.Int) bool
}

// TesterFunc adapts a function to the Tester interface.
type TesterFunc func(n *big.Int) bool

// IsPrime calls f(n).
func (f TesterFunc) IsPrime(n *big.Int) bool { return f(n) }

// BigTester tests primality with math/big.
type BigTester struct {
	// Rounds is the number of extra Miller-Rabin rounds; zero means
	// DefaultRounds.
	Rounds int
}

// IsPrime reports whether n is probably prime. Values below 2 are not prime.
func (t BigTester) IsPrime(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	rounds := t.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return n.ProbablyPrime(rounds)
}

// PrimesUpTo returns the primes p with 2 <= p <= limit in increasing order,
// using a sieve of Eratosthenes.
func PrimesUpTo(limit int) []int64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []int64
	for i := 2; i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, int64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}
