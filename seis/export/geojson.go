package export

import (
	"errors"
	"fmt"
	"math"

	geojson "github.com/paulmach/go.geojson"

	"github.com/cwbudde/algo-seis/seis/rfdepth"
	"github.com/cwbudde/algo-seis/seis/station"
)

// ErrDepthOutOfRange indicates a pierce-point depth outside the traced grid.
var ErrDepthOutOfRange = errors.New("export: depth outside traced grid")

// Leg names used in feature properties.
const (
	LegS = "S"
	LegP = "P"
)

// PiercePoints returns the conversion points of every event at the grid
// depth nearest to depth as Point features. Each feature carries the event
// name, back-azimuth, ray parameter (s/km), leg and grid depth. Legs that
// are evanescent at that depth are omitted.
func PiercePoints(rec *station.Record, paths []rfdepth.RayPath, depths []float64, depth float64) (*geojson.FeatureCollection, error) {
	idx, err := nearest(depths, depth)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for i, p := range paths {
		for _, leg := range []struct {
			name     string
			lat, lon []float64
		}{{LegS, p.LatS, p.LonS}, {LegP, p.LatP, p.LonP}} {
			if idx >= len(leg.lat) || idx >= len(leg.lon) {
				continue
			}
			lat, lon := leg.lat[idx], leg.lon[idx]
			if math.IsNaN(lat) || math.IsNaN(lon) {
				continue
			}
			f := geojson.NewPointFeature([]float64{lon, lat})
			setEventProperties(f, rec, i)
			f.SetProperty("leg", leg.name)
			f.SetProperty("depth", depths[idx])
			fc.AddFeature(f)
		}
	}
	return fc, nil
}

// RayPaths returns one LineString feature per event and leg, following the
// conversion points from the surface down to the leg's last valid depth.
// Legs with fewer than two valid points are omitted.
func RayPaths(rec *station.Record, paths []rfdepth.RayPath, depths []float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range paths {
		for _, leg := range []struct {
			name     string
			lat, lon []float64
		}{{LegS, p.LatS, p.LonS}, {LegP, p.LatP, p.LonP}} {
			line := lineString(leg.lat, leg.lon)
			if len(line) < 2 {
				continue
			}
			f := geojson.NewLineStringFeature(line)
			setEventProperties(f, rec, i)
			f.SetProperty("leg", leg.name)
			if k := len(line) - 1; k < len(depths) {
				f.SetProperty("max_depth", depths[k])
			}
			fc.AddFeature(f)
		}
	}
	return fc
}

func lineString(lat, lon []float64) [][]float64 {
	n := min(len(lat), len(lon))
	out := make([][]float64, 0, n)
	for j := 0; j < n; j++ {
		if math.IsNaN(lat[j]) || math.IsNaN(lon[j]) {
			break
		}
		out = append(out, []float64{lon[j], lat[j]})
	}
	return out
}

func setEventProperties(f *geojson.Feature, rec *station.Record, i int) {
	f.SetProperty("station", rec.Name)
	if i >= len(rec.Events) {
		return
	}
	ev := rec.Events[i]
	f.SetProperty("event", ev.Name)
	f.SetProperty("baz", ev.Baz)
	f.SetProperty("rayp", ev.RayP)
}

func nearest(depths []float64, depth float64) (int, error) {
	if len(depths) == 0 || math.IsNaN(depth) || depth < depths[0] || depth > depths[len(depths)-1] {
		return 0, fmt.Errorf("%w: %v km", ErrDepthOutOfRange, depth)
	}
	best := 0
	for j, d := range depths {
		if math.Abs(d-depth) < math.Abs(depths[best]-depth) {
			best = j
		}
	}
	return best, nil
}
