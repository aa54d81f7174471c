package export

import (
	"github.com/cwbudde/algo-seis/seis/rfdepth"
	"github.com/cwbudde/algo-seis/seis/station"
)

// DepthDocument is the encoded form of a depth conversion.
type DepthDocument struct {
	Station    string   `json:"station"`
	Lat        float64  `json:"stla"`
	Lon        float64  `json:"stlo"`
	Events     []string `json:"events"`
	Depths     Floats   `json:"depths"`
	Amplitudes []Floats `json:"amplitudes"`
	EndIndex   []int    `json:"end_index"`
	XS         []Floats `json:"xs,omitempty"`
	XP         []Floats `json:"xp,omitempty"`
}

// NewDepthDocument describes img for the events of rec. res may carry leg
// offsets; pass nil when only the image is available.
func NewDepthDocument(rec *station.Record, img *rfdepth.DepthImage, res *rfdepth.DepthResult) *DepthDocument {
	doc := &DepthDocument{
		Station:    rec.Name,
		Lat:        rec.Lat,
		Lon:        rec.Lon,
		Events:     eventNames(rec),
		Depths:     Floats(img.Depths),
		Amplitudes: rows(img.Amplitudes),
		EndIndex:   img.EndIndex,
	}
	if res != nil {
		doc.XS = curves(res.XS)
		doc.XP = curves(res.XP)
	}
	return doc
}

// MoveoutDocument is the encoded form of a moveout correction.
type MoveoutDocument struct {
	Station    string   `json:"station"`
	Events     []string `json:"events"`
	RefRayP    float64  `json:"ref_rayp"`
	Time       Floats   `json:"time"`
	Corrected  []Floats `json:"corrected"`
	Transverse []Floats `json:"transverse,omitempty"`
	EndIndex   []int    `json:"end_index"`
}

// NewMoveoutDocument describes res; refRayP is in s/km.
func NewMoveoutDocument(rec *station.Record, refRayP float64, res *rfdepth.MoveoutResult) *MoveoutDocument {
	return &MoveoutDocument{
		Station:    rec.Name,
		Events:     eventNames(rec),
		RefRayP:    refRayP,
		Time:       Floats(rec.TimeAxis()),
		Corrected:  rows(res.Corrected),
		Transverse: rows(res.Transverse),
		EndIndex:   res.EndIndex,
	}
}

// PathDocument is one event's traced ray path.
type PathDocument struct {
	Event string  `json:"event"`
	Baz   float64 `json:"bazi"`
	RayP  float64 `json:"rayp"`
	Tps   Floats  `json:"tps"`
	XS    Floats  `json:"xs"`
	XP    Floats  `json:"xp"`
	LenS  Floats  `json:"len_s"`
	LenP  Floats  `json:"len_p"`
	LatS  Floats  `json:"lat_s"`
	LonS  Floats  `json:"lon_s"`
	LatP  Floats  `json:"lat_p"`
	LonP  Floats  `json:"lon_p"`
}

// PathsDocument is the encoded form of a ray trace.
type PathsDocument struct {
	Station string         `json:"station"`
	Depths  Floats         `json:"depths"`
	Paths   []PathDocument `json:"paths"`
}

// NewPathsDocument describes paths traced for rec on depths.
func NewPathsDocument(rec *station.Record, depths []float64, paths []rfdepth.RayPath) *PathsDocument {
	doc := &PathsDocument{Station: rec.Name, Depths: Floats(depths)}
	for i, p := range paths {
		pd := PathDocument{
			Tps:  Floats(p.Tps.Floats()),
			XS:   Floats(p.XS.Floats()),
			XP:   Floats(p.XP.Floats()),
			LenS: Floats(p.LenS.Floats()),
			LenP: Floats(p.LenP.Floats()),
			LatS: Floats(p.LatS),
			LonS: Floats(p.LonS),
			LatP: Floats(p.LatP),
			LonP: Floats(p.LonP),
		}
		if i < len(rec.Events) {
			ev := rec.Events[i]
			pd.Event, pd.Baz, pd.RayP = ev.Name, ev.Baz, ev.RayP
		}
		doc.Paths = append(doc.Paths, pd)
	}
	return doc
}

func eventNames(rec *station.Record) []string {
	names := make([]string, len(rec.Events))
	for i, ev := range rec.Events {
		names[i] = ev.Name
	}
	return names
}
