package resample

import (
	"errors"
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrInvalidLength indicates an empty input or a non-positive output length.
var ErrInvalidLength = errors.New("resample: invalid length")

// FFT resamples x to n samples with the Fourier method: the spectrum of x is
// truncated or zero-padded to n bins and transformed back. The signal is
// treated as periodic. For even spectra the Nyquist bin is folded when
// shrinking and split when growing, so a band-limited periodic input is
// reproduced exactly on the new grid.
func FFT(x []float64, n int) ([]float64, error) {
	nx := len(x)
	if nx == 0 || n <= 0 {
		return nil, fmt.Errorf("%w: in=%d out=%d", ErrInvalidLength, nx, n)
	}
	if n == nx {
		return append([]float64(nil), x...), nil
	}

	in := make([]complex128, nx)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	fwd, err := algofft.NewPlan64(nx)
	if err != nil {
		return nil, fmt.Errorf("resample: failed to create FFT plan: %w", err)
	}
	spec := make([]complex128, nx)
	if err := fwd.Forward(spec, in); err != nil {
		return nil, err
	}

	nmin := min(n, nx)
	nyq := nmin/2 + 1

	half := make([]complex128, n/2+1)
	copy(half[:nyq], spec[:nyq])
	if nmin%2 == 0 {
		switch {
		case n < nx:
			half[nmin/2] *= 2
		case n > nx:
			half[nmin/2] *= 0.5
		}
	}

	full := make([]complex128, n)
	full[0] = complex(real(half[0]), 0)
	for k := 1; k < len(half); k++ {
		if k == n-k {
			full[k] = complex(real(half[k]), 0)
			continue
		}
		full[k] = half[k]
		full[n-k] = cmplx.Conj(half[k])
	}

	inv, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("resample: failed to create FFT plan: %w", err)
	}
	back := make([]complex128, n)
	if err := inv.Inverse(back, full); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	scale := float64(n) / float64(nx)
	for i := range out {
		out[i] = real(back[i]) * scale
	}

	return out, nil
}
