//go:build gmp

package primality

import (
	"math/big"

	"github.com/ncw/gmp"
)

// GMPTester tests primality with the GMP library. It is compiled in with the
// gmp build tag and is faster for primes of several thousand bits.
type GMPTester struct {
	// Rounds is passed to mpz_probab_prime_p; zero means DefaultRounds.
	Rounds int
}

// IsPrime reports whether n is probably prime. Values below 2 are not prime.
func (t GMPTester) IsPrime(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	rounds := t.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	z := new(gmp.Int).SetBytes(n.Bytes())
	return z.ProbablyPrime(rounds)
}

// Default returns the tester used by the application.
func Default() Tester { return GMPTester{} }

// Backend names the primality implementation compiled in.
const Backend = "gmp"
