// Package analysis characterizes how tracked elements oscillate.
//
// Every element follows the same discrete spring-damper, so its motion after
// a push is a decaying oscillation whose frequency depends only on the
// profile's spring constant:
//
//   - [NaturalFrequency]: the closed-form frequency and decay per tick
//   - [DominantFrequency]: the strongest frequency in a recorded series
//   - [PhaseToASCII]: offset against velocity, as text
//
// # Checking a run
//
// A recorded offset series should peak near the profile's natural frequency:
//
//	want, _ := analysis.NaturalFrequency(repulse.HeadingProfile)
//	got := analysis.DominantFrequency(offsets)
package analysis
