// Package export turns depth-conversion results into documents for other
// tools: GeoJSON conversion points and ray paths, and JSON or MessagePack
// result documents.
//
// Undefined samples (NaN) are written as null in JSON. MessagePack keeps
// them as NaN.
package export
