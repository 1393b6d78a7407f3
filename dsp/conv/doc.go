// Package conv provides the discrete convolution routines behind the
// smoothing pipeline.
//
// Two families are offered:
//
//   - Linear convolution ([Direct], [Convolve], [ConvolveMode]) returning the
//     full len(a)+len(b)-1 result or a trimmed view of it.
//   - Clipped convolution ([Clipped], [ClippedTo], [ClippedFFT]) of a signal
//     with an odd-length, center-aligned kernel. The output has the length of
//     the signal and contributions that would land outside it are dropped:
//
//	for i, k: t = i + k - c; if 0 <= t < N { out[t] += signal[i] * kernel[k] * scale }
//
// Clipping neither wraps nor extends the signal, so near the edges the
// output under-integrates and sum(out) <= sum(signal)*sum(kernel)*scale for
// non-negative inputs.
//
// # Usage
//
//	smoothed, err := conv.Clipped(boltz, kernel, dx)
//	smoothed, err := conv.ClippedWith(conv.MethodFFT, boltz, kernel, dx)
//
// # Algorithm Selection
//
// [MethodDirect] runs the O(N*M) loop. [MethodFFT] computes the full linear
// convolution with FFT overlap-add and keeps the center-aligned slice; it
// agrees with the direct result to floating-point tolerance. [MethodAuto]
// uses the direct loop for kernels up to 64 taps and FFT above.
package conv
