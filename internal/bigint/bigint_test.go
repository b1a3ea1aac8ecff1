package bigint

import "testing"

func TestFromUint128(t *testing.T) {
	got := FromUint128(0, 12345)
	if got.String() != "12345" {
		t.Errorf("FromUint128(0, 12345) = %s, want 12345", got.String())
	}

	// 2^64 + 1
	got = FromUint128(1, 1)
	want := "18446744073709551617"
	if got.String() != want {
		t.Errorf("FromUint128(1, 1) = %s, want %s", got.String(), want)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 255, 256, 1 << 40}
	for _, c := range cases {
		original := FromUint64(c)
		var roundTripped Int
		roundTripped.SetBytes(original.Bytes())
		if roundTripped.Cmp(original) != 0 {
			t.Errorf("round trip of %d produced %s", c, roundTripped.String())
		}
	}
}

func TestBytesEmptyForZero(t *testing.T) {
	if len(FromUint64(0).Bytes()) != 0 {
		t.Error("Bytes() of zero should be empty")
	}
}

func TestMulAgreesAboveAndBelowFFTThreshold(t *testing.T) {
	a := FromUint64(123456789)
	b := FromUint64(987654321)

	var viaSmall Int
	viaSmall.Mul(a, b)

	// Force the FFT path by shifting both operands past the threshold,
	// then shift the expected product back down by the same amount to
	// compare against the untouched small-path product.
	shift := uint(FFTMulBitThreshold/2 + 100)
	var big1, big2 Int
	big1.Lsh(a, shift)
	big2.Lsh(b, shift)

	var viaFFT Int
	viaFFT.Mul(big1, big2)

	var expected Int
	expected.Lsh(viaSmall, 2*shift)

	if viaFFT.Cmp(expected) != 0 {
		t.Errorf("FFT-path Mul disagrees with small-path Mul:\n got %s\nwant %s", viaFFT.String(), expected.String())
	}
}

func TestAddSub(t *testing.T) {
	a := FromUint64(7)
	b := FromUint64(3)
	var sum, diff Int
	sum.Add(a, b)
	if sum.String() != "10" {
		t.Errorf("Add = %s, want 10", sum.String())
	}
	diff.Sub(sum, b)
	if diff.Cmp(a) != 0 {
		t.Errorf("Sub did not invert Add: got %s, want %s", diff.String(), a.String())
	}
}

func TestBitLenZero(t *testing.T) {
	if FromUint64(0).BitLen() != 0 {
		t.Error("BitLen of zero should be 0")
	}
}
