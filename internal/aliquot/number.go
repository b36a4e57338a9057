package aliquot

// Number constrains the unsigned integer widths a sequence can be generated
// over. All engine and generator arithmetic is parametric over this set so
// the step logic exists once instead of per width.
type Number interface {
	~uint16 | ~uint32 | ~uint64
}

// Width identifies the numeric width of a generation run.
type Width int

// Supported numeric widths.
const (
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width16, Width32, Width64:
		return true
	}
	return false
}

// MaxValue returns the largest value representable at width w.
func (w Width) MaxValue() uint64 {
	switch w {
	case Width16:
		return uint64(maxOf[uint16]())
	case Width32:
		return uint64(maxOf[uint32]())
	default:
		return maxOf[uint64]()
	}
}

// maxOf returns the maximum value of the instantiated width.
func maxOf[T Number]() T {
	return ^T(0)
}

// isqrt computes the integer square root of n using Newton's method.
// For n <= 1 the result is n itself.
func isqrt[T Number](n T) T {
	if n <= 1 {
		return n
	}
	x0 := n / 2
	x1 := (x0 + n/x0) / 2
	for x1 < x0 {
		x0 = x1
		x1 = (x0 + n/x0) / 2
	}
	return x0
}
