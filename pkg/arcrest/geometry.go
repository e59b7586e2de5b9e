package arcrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// paramString encodes one operation argument the way the REST API expects:
// strings pass through, booleans and numbers use their literal form, and
// anything structured (geometry documents, spatial references given as maps)
// is serialized to JSON. nil encodes as the empty string, the API's "use the
// default" marker.
func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// The geometry operation wrappers below all follow the same shape: bind the
// operation's documented parameters, encode them into one mapping, and
// forward it to Operation. Optional parameters accept nil or a zero value to
// mean "server default". None of the values are validated client side; the
// server rejects what it does not understand, which keeps the wrappers valid
// across server versions. Adding an operation is purely additive.

// Project projects geometries from inSR to outSR, optionally through a datum
// transformation applied forward or backward.
func (s *GeometryService) Project(ctx context.Context, geometries, inSR, outSR, transformation, transformForward any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("inSR", paramString(inSR))
	params.Set("outSR", paramString(outSR))
	params.Set("transformation", paramString(transformation))
	params.Set("transformForward", paramString(transformForward))
	return s.Operation(ctx, "project", params)
}

// Simplify makes geometries topologically consistent in the given spatial
// reference.
func (s *GeometryService) Simplify(ctx context.Context, geometries, sr any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "simplify", params)
}

// Buffer buffers geometries by the given distances. outSR, bufferSR, and unit
// accept nil for the server defaults.
func (s *GeometryService) Buffer(ctx context.Context, geometries, inSR, distances, outSR, bufferSR, unit any, unionResults, geodesic bool) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("inSR", paramString(inSR))
	params.Set("distances", paramString(distances))
	params.Set("outSR", paramString(outSR))
	params.Set("bufferSR", paramString(bufferSR))
	params.Set("unit", paramString(unit))
	params.Set("unionResults", paramString(unionResults))
	params.Set("geodesic", paramString(geodesic))
	return s.Operation(ctx, "buffer", params)
}

// AreasAndLengths computes areas and perimeter lengths for polygons.
// calculationType is planar, geodesic, or preserveShape; empty selects
// planar.
func (s *GeometryService) AreasAndLengths(ctx context.Context, polygons, sr, lengthUnit, areaUnit any, calculationType string) (Document, error) {
	if calculationType == "" {
		calculationType = "planar"
	}
	params := url.Values{}
	params.Set("polygons", paramString(polygons))
	params.Set("sr", paramString(sr))
	params.Set("lengthUnit", paramString(lengthUnit))
	params.Set("areaUnit", paramString(areaUnit))
	params.Set("calculationType", calculationType)
	return s.Operation(ctx, "areasAndLengths", params)
}

// Lengths computes lengths for polylines. calculationType as in
// AreasAndLengths.
func (s *GeometryService) Lengths(ctx context.Context, polylines, sr, lengthUnit any, calculationType string) (Document, error) {
	if calculationType == "" {
		calculationType = "planar"
	}
	params := url.Values{}
	params.Set("polylines", paramString(polylines))
	params.Set("sr", paramString(sr))
	params.Set("lengthUnit", paramString(lengthUnit))
	params.Set("calculationType", calculationType)
	return s.Operation(ctx, "lengths", params)
}

// LabelPoints computes interior label points for polygons.
func (s *GeometryService) LabelPoints(ctx context.Context, polygons, sr any) (Document, error) {
	params := url.Values{}
	params.Set("polygons", paramString(polygons))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "labelPoints", params)
}

// Relation tests the pairs of geometries1 and geometries2 against one of the
// GeometryRelation constants. relationParam is only relevant for
// GeometryRelationRelation.
func (s *GeometryService) Relation(ctx context.Context, geometries1, geometries2, sr any, relation, relationParam string) (Document, error) {
	params := url.Values{}
	params.Set("geometries1", paramString(geometries1))
	params.Set("geometries2", paramString(geometries2))
	params.Set("sr", paramString(sr))
	params.Set("relation", relation)
	params.Set("relationParam", relationParam)
	return s.Operation(ctx, "relation", params)
}

// Densify inserts vertices so that no segment exceeds maxSegmentLength.
func (s *GeometryService) Densify(ctx context.Context, geometries, sr, maxSegmentLength any, geodesic bool, lengthUnit any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	params.Set("maxSegmentLength", paramString(maxSegmentLength))
	params.Set("geodesic", paramString(geodesic))
	params.Set("lengthUnit", paramString(lengthUnit))
	return s.Operation(ctx, "densify", params)
}

// Distance measures the distance between geometry1 and geometry2.
func (s *GeometryService) Distance(ctx context.Context, geometry1, geometry2, sr, distanceUnit any, geodesic bool) (Document, error) {
	params := url.Values{}
	params.Set("geometry1", paramString(geometry1))
	params.Set("geometry2", paramString(geometry2))
	params.Set("sr", paramString(sr))
	params.Set("distanceUnit", paramString(distanceUnit))
	params.Set("geodesic", paramString(geodesic))
	return s.Operation(ctx, "distance", params)
}

// Union unions the geometries.
func (s *GeometryService) Union(ctx context.Context, geometries, sr any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "union", params)
}

// Intersect intersects each of geometries with geometry.
func (s *GeometryService) Intersect(ctx context.Context, geometries, geometry, sr any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("geometry", paramString(geometry))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "intersect", params)
}

// Cut divides the target polylines or polygons with the cutter polyline.
func (s *GeometryService) Cut(ctx context.Context, cutter, target, sr any) (Document, error) {
	params := url.Values{}
	params.Set("cutter", paramString(cutter))
	params.Set("target", paramString(target))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "cut", params)
}

// TrimExtend trims or extends polylines using trimExtendTo as the guide.
// extendHow is the documented flag value; 0 is the default behavior.
func (s *GeometryService) TrimExtend(ctx context.Context, polylines, trimExtendTo, sr any, extendHow int) (Document, error) {
	params := url.Values{}
	params.Set("polylines", paramString(polylines))
	params.Set("trimExtendTo", paramString(trimExtendTo))
	params.Set("sr", paramString(sr))
	params.Set("extendHow", strconv.Itoa(extendHow))
	return s.Operation(ctx, "trimExtend", params)
}

// Offset constructs offsets of the geometries at offsetDistance. offsetHow is
// esriGeometryOffsetRounded, Mitered, or Bevelled; empty selects rounded.
// bevelRatio empty selects the documented default 1.1.
func (s *GeometryService) Offset(ctx context.Context, geometries, sr, offsetDistance, offsetUnit any, offsetHow, bevelRatio string, simplifyResult bool) (Document, error) {
	if offsetHow == "" {
		offsetHow = "esriGeometryOffsetRounded"
	}
	if bevelRatio == "" {
		bevelRatio = "1.1"
	}
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	params.Set("offsetDistance", paramString(offsetDistance))
	params.Set("offsetUnit", paramString(offsetUnit))
	params.Set("offsetHow", offsetHow)
	params.Set("bevelRatio", bevelRatio)
	params.Set("simplifyResult", paramString(simplifyResult))
	return s.Operation(ctx, "offset", params)
}

// Generalize generalizes the geometries with a maximum deviation.
func (s *GeometryService) Generalize(ctx context.Context, geometries, sr, maxDeviation, deviationUnit any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	params.Set("maxDeviation", paramString(maxDeviation))
	params.Set("deviationUnit", paramString(deviationUnit))
	return s.Operation(ctx, "generalize", params)
}

// AutoComplete constructs polygons filling the gaps between existing polygon
// boundaries and the given polylines.
func (s *GeometryService) AutoComplete(ctx context.Context, polygons, polylines, sr any) (Document, error) {
	params := url.Values{}
	params.Set("polygons", paramString(polygons))
	params.Set("polylines", paramString(polylines))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "autoComplete", params)
}

// Reshape reshapes a polyline or polygon with a single-part reshaper
// polyline.
func (s *GeometryService) Reshape(ctx context.Context, target, reshaper, sr any) (Document, error) {
	params := url.Values{}
	params.Set("target", paramString(target))
	params.Set("reshaper", paramString(reshaper))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "reshape", params)
}

// ConvexHull computes the convex hull of the geometries.
func (s *GeometryService) ConvexHull(ctx context.Context, geometries, sr any) (Document, error) {
	params := url.Values{}
	params.Set("geometries", paramString(geometries))
	params.Set("sr", paramString(sr))
	return s.Operation(ctx, "convexHull", params)
}
