//go:build !gmp

package primality

// Default returns the tester used by the application.
func Default() Tester { return BigTester{} }

// Backend names the primality implementation compiled in.
const Backend = "math/big"
