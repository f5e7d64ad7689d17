// Package array models the geometry of a two-element line array in the far
// field.
//
// A plane wave arriving from angle theta (degrees from broadside, positive
// towards sensor 1) reaches sensor 2 later than sensor 1 by
//
//	tau = d * sin(theta) / c
//
// where d is the sensor spacing and c the propagation speed. [Geometry] holds
// d and c and converts in both directions, so signal synthesis and angle
// inversion share a single speed-of-sound value.
package array
