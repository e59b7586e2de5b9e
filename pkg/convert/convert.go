// Package convert turns ArcGIS REST query responses into common geospatial
// formats: orb geometries, GeoJSON feature collections, and CSV with WKT
// geometry.
package convert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/Sudo-Ivan/arcgis-rest/pkg/arcrest"
)

// GeometryToOrb converts an ArcGIS REST JSON geometry (x/y point, points
// multipoint, paths polyline, rings polygon) into an orb.Geometry. Open rings
// are closed. Geometries of an unrecognized shape are an error.
func GeometryToOrb(g map[string]any) (orb.Geometry, error) {
	doc := arcrest.Document(g)
	switch {
	case doc.Has("x") && doc.Has("y"):
		return orb.Point{doc.Float("x"), doc.Float("y")}, nil

	case doc.Has("points"):
		pts := make(orb.MultiPoint, 0)
		for _, p := range doc.List("points") {
			pt, ok := position(p)
			if !ok {
				continue
			}
			pts = append(pts, pt)
		}
		return pts, nil

	case doc.Has("paths"):
		paths := doc.List("paths")
		lines := make(orb.MultiLineString, 0, len(paths))
		for _, path := range paths {
			lines = append(lines, lineString(path))
		}
		if len(lines) == 1 {
			return lines[0], nil
		}
		return lines, nil

	case doc.Has("rings"):
		poly := make(orb.Polygon, 0)
		for _, r := range doc.List("rings") {
			ring := orb.Ring(lineString(r))
			if len(ring) == 0 {
				continue
			}
			if !ring.Closed() {
				ring = append(ring, ring[0])
			}
			poly = append(poly, ring)
		}
		return poly, nil
	}
	return nil, fmt.Errorf("unrecognized geometry shape: %v", g)
}

func position(v any) (orb.Point, bool) {
	coords, ok := v.([]any)
	if !ok || len(coords) < 2 {
		return orb.Point{}, false
	}
	x, xok := coords[0].(float64)
	y, yok := coords[1].(float64)
	if !xok || !yok {
		return orb.Point{}, false
	}
	return orb.Point{x, y}, true
}

func lineString(v any) orb.LineString {
	points, ok := v.([]any)
	if !ok {
		return nil
	}
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		pt, pok := position(p)
		if !pok {
			continue
		}
		line = append(line, pt)
	}
	return line
}

// FeatureSetToGeoJSON converts a query response document into a GeoJSON
// feature collection, carrying the attributes over as properties. Features
// without a usable geometry are skipped, matching how partial server
// responses are usually consumed.
func FeatureSetToGeoJSON(featureSet arcrest.Document) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range featureSet.Maps("features") {
		gm := f.Map("geometry")
		if gm == nil {
			continue
		}
		geom, err := GeometryToOrb(gm)
		if err != nil {
			continue
		}
		feature := geojson.NewFeature(geom)
		if attrs := f.Map("attributes"); attrs != nil {
			feature.Properties = geojson.Properties(attrs)
		}
		fc.Append(feature)
	}
	return fc, nil
}

// FeatureSetToCSV converts a query response document to CSV. Columns are the
// union of all attribute keys in sorted order, plus a trailing WKT_Geometry
// column.
func FeatureSetToCSV(featureSet arcrest.Document) (string, error) {
	features := featureSet.Maps("features")
	if len(features) == 0 {
		return "", nil
	}

	headerMap := make(map[string]bool)
	for _, f := range features {
		for k := range f.Map("attributes") {
			headerMap[k] = true
		}
	}

	var headers []string
	for k := range headerMap {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	headers = append(headers, "WKT_Geometry")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, f := range features {
		attrs := f.Map("attributes")
		row := make([]string, len(headers))
		for i, header := range headers {
			if header == "WKT_Geometry" {
				row[i] = geometryWKT(f.Map("geometry"))
				continue
			}
			if val, ok := attrs[header]; ok && val != nil {
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row to CSV: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error during CSV writing: %v", err)
	}

	return buf.String(), nil
}

func geometryWKT(gm arcrest.Document) string {
	if gm == nil {
		return ""
	}
	geom, err := GeometryToOrb(gm)
	if err != nil {
		return ""
	}
	return wkt.MarshalString(geom)
}
