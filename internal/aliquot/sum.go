package aliquot

import (
	apperrors "github.com/agbru/aliquot/internal/errors"
)

// AliquotSum computes the sum of all proper divisors of n, i.e. every
// divisor strictly less than n. The sum of an empty divisor set is zero, so
// AliquotSum(1) == 0; the value for 0 is undefined and also reported as 0
// (callers reject 0 before reaching the engine).
//
// Divisors are found by trial division up to the integer square root of n.
// Each divisor d < sqrt(n) contributes both d and n/d; when d*d == n the
// divisor is counted once. Accumulation uses checked addition: if the running
// sum would exceed the maximum of the instantiated width, an
// apperrors.OverflowError is returned.
//
// The function is pure and safe for concurrent use.
func AliquotSum[T Number](n T) (T, error) {
	if n <= 1 {
		return 0, nil
	}
	max := maxOf[T]()
	sum := T(1)
	end := isqrt(n) + 1
	for i := T(2); i < end; i++ {
		div := n / i
		if i*div != n {
			continue
		}
		add := i
		if i != div {
			add += div
		}
		if add > max-sum {
			return 0, apperrors.OverflowError{
				Sum:    uint64(sum),
				Addend: uint64(add),
				Max:    uint64(max),
			}
		}
		sum += add
	}
	return sum, nil
}

// SumForWidth computes the aliquot sum of n at the given width. It is the
// width-dispatching entry point for sum-only mode, where the caller works in
// uint64 regardless of the configured width.
func SumForWidth(w Width, n uint64) (uint64, error) {
	if n > w.MaxValue() {
		return 0, apperrors.ValidationError{
			Field:   "number",
			Message: "value does not fit the configured numeric width",
		}
	}
	switch w {
	case Width16:
		s, err := AliquotSum(uint16(n))
		return uint64(s), err
	case Width32:
		s, err := AliquotSum(uint32(n))
		return uint64(s), err
	default:
		return AliquotSum(n)
	}
}
