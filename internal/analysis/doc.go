// Package analysis inspects the dynamics of a point-charge universe.
//
// Tools operate either on stored frame series or on a live universe:
//
//   - [PowerSpectrum], [DominantFrequency]: spectral content of a sampled series
//   - [Series]: extract a named column from stored frame records
//   - [LyapunovExponent]: trajectory separation of a perturbed copy
//   - [GeneratePhasePortrait]: one particle's (x, vx) trajectory
//   - [GeneratePoincareSection]: crossings of a horizontal line
//   - [StepSweep]: solver cost and energy drift across step sizes
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates sensitive dependence on the
// initial arrangement:
//
//	lambda := analysis.LyapunovExponent(u, stepper, dt, steps, 1e-8)
//	if lambda > 0 {
//	    // nearby arrangements diverge
//	}
package analysis
