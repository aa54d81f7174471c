// Package geo converts between slowness and distance units and projects
// points along great circles on a spherical earth.
package geo

import (
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
)

// EarthRadius is the mean earth radius in km.
const EarthRadius = 6371.0

// kmPerDeg is the length of one degree of arc at the surface.
const kmPerDeg = EarthRadius * math.Pi / 180

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DegToKm converts degrees of arc to surface km.
func DegToKm(deg float64) float64 {
	return deg * kmPerDeg
}

// KmToDeg converts surface km to degrees of arc.
func KmToDeg(km float64) float64 {
	return km / kmPerDeg
}

// SkmToSrad converts a ray parameter from s/km to s/rad.
func SkmToSrad(skm float64) float64 {
	return skm * EarthRadius
}

// SradToSkm converts a ray parameter from s/rad to s/km.
func SradToSkm(srad float64) float64 {
	return srad / EarthRadius
}

// SdegToSkm converts a ray parameter from s/deg to s/km.
func SdegToSkm(sdeg float64) float64 {
	return sdeg / kmPerDeg
}

// SkmToSdeg converts a ray parameter from s/km to s/deg.
func SkmToSdeg(skm float64) float64 {
	return skm * kmPerDeg
}

// Destination returns the point reached by travelling distDeg degrees of arc
// from (lat, lon) along the initial azimuth azimuthDeg (clockwise from north).
// Longitudes are normalized to [-180, 180). A zero distance returns the start
// point unchanged; NaN distances propagate.
func Destination(lat, lon, azimuthDeg, distDeg float64) (float64, float64) {
	if distDeg == 0 {
		return lat, lon
	}

	phi1 := DegToRad(lat)
	lam1 := DegToRad(lon)
	theta := DegToRad(azimuthDeg)
	delta := DegToRad(distDeg)

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(core.Clamp(sinPhi2, -1, 1))
	lam2 := lam1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	return RadToDeg(phi2), NormalizeLon(RadToDeg(lam2))
}

// NormalizeLon wraps a longitude into [-180, 180).
func NormalizeLon(lon float64) float64 {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// Distance returns the great-circle distance in degrees between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := DegToRad(lat1), DegToRad(lat2)
	dphi := phi2 - phi1
	dlam := DegToRad(lon2 - lon1)

	a := math.Sin(dphi/2)*math.Sin(dphi/2) + math.Cos(phi1)*math.Cos(phi2)*math.Sin(dlam/2)*math.Sin(dlam/2)
	return RadToDeg(2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)))
}
