package orchestration

import (
	"fmt"
	"math/big"

	"github.com/agbru/padicalc/internal/config"
	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/primality"
)

// PrimesToRun returns the primes a configuration asks for: every prime up
// to PrimesUpTo when it is set, otherwise the single Prime. Primes are
// returned in increasing order.
func PrimesToRun(cfg config.AppConfig) ([]*big.Int, error) {
	if cfg.PrimesUpTo > 0 {
		small := primality.PrimesUpTo(cfg.PrimesUpTo)
		if len(small) == 0 {
			return nil, apperrors.ValidationError{Field: "primes-upto", Message: fmt.Sprintf("no prime is at most %d", cfg.PrimesUpTo)}
		}
		primes := make([]*big.Int, len(small))
		for i, p := range small {
			primes[i] = big.NewInt(p)
		}
		return primes, nil
	}
	p, ok := new(big.Int).SetString(cfg.Prime, 10)
	if !ok || p.Cmp(big.NewInt(1)) <= 0 {
		return nil, apperrors.ValidationError{Field: "prime", Message: fmt.Sprintf("%q is not an integer greater than 1", cfg.Prime)}
	}
	return []*big.Int{p}, nil
}
