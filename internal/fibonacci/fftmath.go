package fibonacci

// fftInPlace runs an iterative radix-2 Cooley-Tukey transform over a,
// whose length must already be a power of two. The planner supplies the
// twiddle-factor tables; set invert to run the inverse transform, which
// this function also normalizes by 1/len(a).
func fftInPlace(a []complex128, p *Planner, invert bool) {
	bitReversePermute(a)
	n := len(a)
	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		tw := p.twiddles(length, invert)
		for i := 0; i < n; i += length {
			for j := 0; j < half; j++ {
				u := a[i+j]
				v := a[i+j+half] * tw[j]
				a[i+j] = u + v
				a[i+j+half] = u - v
			}
		}
	}
	if invert {
		scale := complex(1/float64(n), 0)
		for i := range a {
			a[i] *= scale
		}
	}
}

func bitReversePermute(a []complex128) {
	n := len(a)
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// nextPowerOfTwo returns the smallest power of two that is >= n, with a
// floor of 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
