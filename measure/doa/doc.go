// Package doa estimates the direction of arrival of a narrow-band source
// from a two-sensor array.
//
// The time difference of arrival between the sensors is measured from the
// phase of the cross spectrum around the tone frequency and then inverted
// to a bearing with the array geometry:
//
//	est, _ := doa.NewPhaseEstimator(100000, 30000, doa.WithBins(5))
//	res, _ := est.Estimate(x1, x2)
//	angle := geom.Angle(res.Delay)
//
// Positive delays mean the wavefront reaches the first sensor before the
// second one.
package doa
