package leb

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUnsigned_ByteExact(t *testing.T) {
	cases := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0}},
		{2, []byte{2}},
		{127, []byte{127}},
		{128, []byte{0x80, 1}},
		{129, []byte{0x81, 1}},
		{130, []byte{0x82, 1}},
		{12857, []byte{0xB9, 100}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, EncodeUnsigned(c.n), "n=%d", c.n)
	}
}

func TestEncodeSigned_ByteExact(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{127, []byte{0xFF, 0}},
		{128, []byte{0x80, 1}},
		{-2, []byte{0x7E}},
		{-127, []byte{0x81, 0x7F}},
		{-128, []byte{0x80, 0x7F}},
		{-129, []byte{0xFF, 0x7E}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, EncodeSigned(c.n), "n=%d", c.n)
	}
}

func TestDecodeUnsigned_ByteExact(t *testing.T) {
	cases := []struct {
		bytes     []byte
		wantValue uint64
		wantLen   int
	}{
		{[]byte{2}, 2, 1},
		{[]byte{127}, 127, 1},
		{[]byte{0x80, 1}, 128, 2},
		{[]byte{0x81, 1}, 129, 2},
		{[]byte{0x82, 1}, 130, 2},
		{[]byte{0xB9, 0x64}, 12857, 2},
	}

	for _, c := range cases {
		v, n, err := DecodeUnsigned(c.bytes)
		require.NoError(t, err)
		assert.Equal(t, c.wantValue, v)
		assert.Equal(t, c.wantLen, n)
	}
}

func TestDecodeSigned_Negative(t *testing.T) {
	v, n, err := DecodeSigned([]byte{0x81, 0x7F})
	require.NoError(t, err)
	assert.Equal(t, int64(-127), v)
	assert.Equal(t, 2, n)
}

func TestRoundTripUnsigned(t *testing.T) {
	values := []uint64{0, 2, 127, 128, 129, 130, 12857, math.MaxInt64, math.MaxUint64}

	for _, n := range values {
		encoded := EncodeUnsigned(n)
		v, consumed, err := DecodeUnsigned(encoded)
		require.NoError(t, err)
		assert.Equal(t, n, v, "n=%d", n)
		assert.Equal(t, len(encoded), consumed)
	}
}

func TestRoundTripSigned(t *testing.T) {
	values := []int64{0, 2, 127, 128, 129, 130, 12857,
		math.MaxInt64, math.MinInt64,
		-1, -2, -127, -128, -129}

	for _, n := range values {
		encoded := EncodeSigned(n)
		v, consumed, err := DecodeSigned(encoded)
		require.NoError(t, err)
		assert.Equal(t, n, v, "n=%d", n)
		assert.Equal(t, len(encoded), consumed)
	}
}

func TestDecodeUnsigned_Truncated(t *testing.T) {
	_, _, err := DecodeUnsigned([]byte{0x80, 0x81, 0xFF})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecodeSigned_Truncated(t *testing.T) {
	_, _, err := DecodeSigned([]byte{0xFF, 0xFF})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecodeUnsigned_EmptyInput(t *testing.T) {
	_, _, err := DecodeUnsigned(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))
}
