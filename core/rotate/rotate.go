// Package rotate implements circular bit shifts over a fixed bit width.
package rotate

import "math/big"

// Direction selects which way bits are rotated.
type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// FromParity maps an even value to Right and an odd value to Left.
func FromParity(n *big.Int) Direction {
	if n.Bit(0) == 0 {
		return Right
	}
	return Left
}

// Rotate rotates value by amount bits within width bits. The value is masked
// to width bits before rotating and amount is taken modulo width. The input is
// never modified.
func Rotate(d Direction, value *big.Int, amount uint64, width uint) *big.Int {
	if width == 0 {
		return new(big.Int)
	}
	mask := Mask(width)
	v := new(big.Int).And(value, mask)
	n := uint(amount % uint64(width))
	if n == 0 {
		return v
	}

	var hi, lo big.Int
	switch d {
	case Left:
		hi.Lsh(v, n)
		hi.And(&hi, mask)
		lo.Rsh(v, width-n)
	default:
		hi.Lsh(v, width-n)
		hi.And(&hi, mask)
		lo.Rsh(v, n)
	}
	return v.Or(&hi, &lo)
}

// Byte rotates an 8-bit value.
func Byte(d Direction, b byte, amount uint64) byte {
	n := uint(amount % 8)
	if d == Left {
		return b<<n | b>>(8-n)
	}
	return b>>n | b<<(8-n)
}

// Mask returns 2^width - 1.
func Mask(width uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), width)
	return m.Sub(m, big.NewInt(1))
}
