// Package rfdepth converts receiver functions from the time domain to the
// depth domain.
//
// The package computes Ps-P delay curves versus depth for a station's
// events (MapTimes), aligns traces to a reference ray parameter
// (MoveoutCorrect), back-traces conversion points through 1-D and 3-D
// velocity structure (Trace1D, Trace3D), corrects delay times for 3-D
// heterogeneity (MigrationCorrect) and resamples amplitudes onto a depth
// grid (TimeToDepth).
//
// Per-depth results are curve.Curve values: once a ray turns evanescent
// every deeper sample is invalid. Events are processed concurrently and
// independently; a failure in one event invalidates only that event's
// output.
//
// Processor bundles the station-level pipelines:
//
//	p := rfdepth.NewProcessor(rfdepth.WithLogger(logger))
//	img, err := p.Depth(rec, depths, table)
package rfdepth
