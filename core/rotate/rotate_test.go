package rotate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotate(t *testing.T) {
	t.Run("left", func(t *testing.T) {
		r := Rotate(Left, big.NewInt(0b1000_0001), 1, 8)
		require.Equal(t, int64(0b0000_0011), r.Int64())
	})

	t.Run("right", func(t *testing.T) {
		r := Rotate(Right, big.NewInt(0b1000_0001), 1, 8)
		require.Equal(t, int64(0b1100_0000), r.Int64())
	})

	t.Run("amount is reduced modulo width", func(t *testing.T) {
		v := big.NewInt(0xabcd)
		require.Equal(t, 0, Rotate(Left, v, 3, 16).Cmp(Rotate(Left, v, 19, 16)))
		require.Equal(t, 0, Rotate(Right, v, 5, 16).Cmp(Rotate(Right, v, 16*7+5, 16)))
	})

	t.Run("full turn is identity", func(t *testing.T) {
		v := big.NewInt(0x1234)
		require.Equal(t, 0, Rotate(Left, v, 16, 16).Cmp(v))
		require.Equal(t, 0, Rotate(Right, v, 0, 16).Cmp(v))
	})

	t.Run("value is masked on entry", func(t *testing.T) {
		r := Rotate(Left, big.NewInt(0x1ff), 0, 8)
		require.Equal(t, int64(0xff), r.Int64())
	})

	t.Run("left undoes right", func(t *testing.T) {
		v, _ := new(big.Int).SetString("81b9d20fb1ec32dbe0ca802a1f6d7aeff8099608244424e215e6bf309ee7c239", 16)
		for _, n := range []uint64{1, 7, 8, 100, 255} {
			r := Rotate(Right, v, n, 256)
			require.LessOrEqual(t, r.BitLen(), 256)
			require.Equal(t, 0, Rotate(Left, r, n, 256).Cmp(v))
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		v := big.NewInt(0x0f)
		Rotate(Left, v, 4, 8)
		require.Equal(t, int64(0x0f), v.Int64())
	})

	t.Run("zero width", func(t *testing.T) {
		require.Equal(t, 0, Rotate(Left, big.NewInt(5), 1, 0).Sign())
	})
}

func TestByte(t *testing.T) {
	require.Equal(t, byte(0b0000_0011), Byte(Left, 0b1000_0001, 1))
	require.Equal(t, byte(0b1100_0000), Byte(Right, 0b1000_0001, 1))
	require.Equal(t, byte(0x5a), Byte(Left, 0x5a, 8))
	require.Equal(t, byte(0xa5), Byte(Right, 0x5a, 4))

	for b := 0; b < 256; b++ {
		for n := uint64(0); n < 8; n++ {
			want := Rotate(Left, big.NewInt(int64(b)), n, 8).Uint64()
			require.Equal(t, byte(want), Byte(Left, byte(b), n))
		}
	}
}

func TestFromParity(t *testing.T) {
	require.Equal(t, Right, FromParity(big.NewInt(0)))
	require.Equal(t, Left, FromParity(big.NewInt(3)))
	require.Equal(t, "left", Left.String())
	require.Equal(t, "right", Right.String())
}
