package hex

import (
	"math/big"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/storacha/go-toyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestToHex(t *testing.T) {
	require.Equal(t, "0000000f", ToHex(big.NewInt(15), 32))
	require.Equal(t, "ff", ToHex(big.NewInt(255), 8))
	require.Equal(t, "0000000000000000", ToHex(new(big.Int), 64))

	v, _ := new(big.Int).SetString("81b9d20fb1ec32dbe0ca802a1f6d7aeff8099608244424e215e6bf309ee7c239", 16)
	require.Equal(t, "81b9d20fb1ec32dbe0ca802a1f6d7aeff8099608244424e215e6bf309ee7c239", ToHex(v, 256))
}

func TestToBytes(t *testing.T) {
	b, err := ToBytes("00ff10")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff, 0x10}, b)

	_, err = ToBytes("abc")
	require.Error(t, err)
}

func TestToDigest(t *testing.T) {
	for _, v := range []int64{0, 1, 0x1234, 0x7fffffff} {
		value := big.NewInt(v)
		want := helpers.Must(ToBytes(ToHex(value, 64)))
		require.Equal(t, want, ToDigest(value, 64))
		require.Len(t, ToDigest(value, 64), 8)
	}
}

func TestMultibase(t *testing.T) {
	s, err := Multibase(big.NewInt(0xabcd), 32, multibase.Base16)
	require.NoError(t, err)
	require.Equal(t, "f0000abcd", s)

	s, err = Multibase(big.NewInt(0xabcd), 32, multibase.Base32)
	require.NoError(t, err)
	enc, b, err := multibase.Decode(s)
	require.NoError(t, err)
	require.Equal(t, multibase.Encoding(multibase.Base32), enc)
	require.Equal(t, []byte{0, 0, 0xab, 0xcd}, b)

	_, err = Multibase(big.NewInt(1), 8, multibase.Encoding(0x7f))
	require.Error(t, err)
}
