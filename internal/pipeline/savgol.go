package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SavGol is a Savitzky-Golay smoothing filter: a local least-squares
// polynomial fit evaluated at each sample. Interior samples use a fixed
// convolution kernel; the first and last window/2 samples are produced by
// evaluating a polynomial fitted to the first/last full window, so
// polynomial inputs of degree <= PolyOrder pass through unchanged,
// boundaries included.
type SavGol struct {
	Window    int
	PolyOrder int
	kernel    []float64
}

// NewSavGol validates the filter parameters and precomputes the interior
// convolution kernel. Window must be odd and strictly greater than
// PolyOrder.
func NewSavGol(window, polyorder int) (*SavGol, error) {
	if window%2 == 0 {
		return nil, fmt.Errorf("%w: window %d must be odd", ErrSmoothingParams, window)
	}
	if window <= polyorder {
		return nil, fmt.Errorf("%w: window %d must be greater than polyorder %d",
			ErrSmoothingParams, window, polyorder)
	}
	if polyorder < 0 {
		return nil, fmt.Errorf("%w: polyorder %d must be non-negative", ErrSmoothingParams, polyorder)
	}
	kernel, err := savgolKernel(window, polyorder)
	if err != nil {
		return nil, err
	}
	return &SavGol{Window: window, PolyOrder: polyorder, kernel: kernel}, nil
}

// Apply smooths the series and returns a new slice. Fails with
// ErrWindowTooLarge when the series is shorter than the window.
func (f *SavGol) Apply(vals []float64) ([]float64, error) {
	n := len(vals)
	if n < f.Window {
		return nil, fmt.Errorf("%w: window %d, samples %d", ErrWindowTooLarge, f.Window, n)
	}
	h := f.Window / 2
	out := make([]float64, n)
	for i := h; i < n-h; i++ {
		var sum float64
		for k, c := range f.kernel {
			sum += c * vals[i-h+k]
		}
		out[i] = sum
	}

	// Boundary samples: fit a polynomial to the first/last window and
	// evaluate it at the positions the kernel cannot reach.
	head, err := polyfit(vals[:f.Window], f.PolyOrder)
	if err != nil {
		return nil, err
	}
	for i := 0; i < h; i++ {
		out[i] = polyeval(head, float64(i))
	}
	tail, err := polyfit(vals[n-f.Window:], f.PolyOrder)
	if err != nil {
		return nil, err
	}
	for i := n - h; i < n; i++ {
		out[i] = polyeval(tail, float64(i-(n-f.Window)))
	}
	return out, nil
}

// savgolKernel computes the interior convolution coefficients: row zero
// of the pseudo-inverse of the Vandermonde design matrix centred on the
// window midpoint.
func savgolKernel(window, polyorder int) ([]float64, error) {
	h := window / 2
	a := mat.NewDense(window, polyorder+1, nil)
	for i := 0; i < window; i++ {
		t := float64(i - h)
		p := 1.0
		for j := 0; j <= polyorder; j++ {
			a.Set(i, j, p)
			p *= t
		}
	}
	eye := mat.NewDense(window, window, nil)
	for i := 0; i < window; i++ {
		eye.Set(i, i, 1)
	}

	var qr mat.QR
	qr.Factorize(a)
	var pinv mat.Dense
	if err := qr.SolveTo(&pinv, false, eye); err != nil {
		return nil, fmt.Errorf("%w: design matrix is singular", ErrSmoothingParams)
	}
	kernel := make([]float64, window)
	for j := 0; j < window; j++ {
		kernel[j] = pinv.At(0, j)
	}
	return kernel, nil
}

// polyfit fits a polynomial of the given order to y sampled at
// t = 0..len(y)-1 and returns its coefficients, constant term first.
func polyfit(y []float64, order int) ([]float64, error) {
	n := len(y)
	a := mat.NewDense(n, order+1, nil)
	for i := 0; i < n; i++ {
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= float64(i)
		}
	}
	b := mat.NewVecDense(n, y)
	var qr mat.QR
	qr.Factorize(a)
	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, b); err != nil {
		return nil, fmt.Errorf("%w: boundary fit failed", ErrSmoothingParams)
	}
	coeffs := make([]float64, order+1)
	for j := 0; j <= order; j++ {
		coeffs[j] = c.AtVec(j)
	}
	return coeffs, nil
}

func polyeval(coeffs []float64, t float64) float64 {
	var v float64
	for j := len(coeffs) - 1; j >= 0; j-- {
		v = v*t + coeffs[j]
	}
	return v
}
