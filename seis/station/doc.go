// Package station holds the receiver functions recorded at one station:
// station metadata, per-event metadata and one amplitude matrix per
// component.
//
// A Record is immutable once built. Normalize, Resample and SortBy return a
// new Record and leave the receiver untouched. JSON and MessagePack codecs
// are provided for exchanging records with other tools; elevation is given
// in metres on the wire and kept in kilometres in memory.
package station
