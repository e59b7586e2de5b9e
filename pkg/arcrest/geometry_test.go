package arcrest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeometryService(t *testing.T) (*GeometryService, map[string]url.Values) {
	t.Helper()
	calls := map[string]url.Values{}

	mux := http.NewServeMux()
	mux.HandleFunc("/Geometry/GeometryServer", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"serviceDescription": "geometry ops"}`))
	})
	mux.HandleFunc("/Geometry/GeometryServer/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		calls[r.URL.Path] = r.PostForm
		json.NewEncoder(w).Encode(map[string]any{"geometries": []any{}})
	})

	base := newTestServerMux(t, mux)
	svc, err := NewGeometryService(context.Background(), testClient(), base+"/Geometry/GeometryServer")
	require.NoError(t, err)
	return svc, calls
}

func TestGeometryBuffer(t *testing.T) {
	svc, calls := newTestGeometryService(t)

	_, err := svc.Buffer(context.Background(), "123,456", 27700, 100, nil, nil, nil, false, false)
	require.NoError(t, err)

	form, ok := calls["/Geometry/GeometryServer/buffer"]
	require.True(t, ok, "buffer must target <service>/buffer, saw %v", calls)

	var keys []string
	for k := range form {
		if k != "f" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	assert.Equal(t,
		[]string{"bufferSR", "distances", "geodesic", "geometries", "inSR", "outSR", "unionResults", "unit"},
		keys, "buffer sends exactly its documented parameter set")

	assert.Equal(t, "123,456", form.Get("geometries"))
	assert.Equal(t, "27700", form.Get("inSR"))
	assert.Equal(t, "100", form.Get("distances"))
	assert.Equal(t, "", form.Get("outSR"))
	assert.Equal(t, "", form.Get("bufferSR"))
	assert.Equal(t, "", form.Get("unit"))
	assert.Equal(t, "false", form.Get("unionResults"))
	assert.Equal(t, "false", form.Get("geodesic"))
}

func TestGeometryOperationLowercasesName(t *testing.T) {
	svc, calls := newTestGeometryService(t)

	_, err := svc.AreasAndLengths(context.Background(), "[]", 4326, nil, nil, "")
	require.NoError(t, err)

	form, ok := calls["/Geometry/GeometryServer/areasandlengths"]
	require.True(t, ok, "operation names join lower-cased, saw %v", calls)
	assert.Equal(t, "planar", form.Get("calculationType"))
}

func TestGeometryProjectEncodesStructuredParams(t *testing.T) {
	svc, calls := newTestGeometryService(t)

	inSR := map[string]any{"wkid": 27700}
	_, err := svc.Project(context.Background(), "123,456", inSR, 4326, 1314, true)
	require.NoError(t, err)

	form := calls["/Geometry/GeometryServer/project"]
	require.NotNil(t, form)
	assert.Equal(t, `{"wkid":27700}`, form.Get("inSR"))
	assert.Equal(t, "4326", form.Get("outSR"))
	assert.Equal(t, "1314", form.Get("transformation"))
	assert.Equal(t, "true", form.Get("transformForward"))
}

func TestGeometryDistanceAndUnion(t *testing.T) {
	svc, calls := newTestGeometryService(t)
	ctx := context.Background()

	pt := map[string]any{"x": -118.15, "y": 33.80}
	_, err := svc.Distance(ctx, pt, pt, 4326, nil, true)
	require.NoError(t, err)
	form := calls["/Geometry/GeometryServer/distance"]
	require.NotNil(t, form)
	assert.Equal(t, "true", form.Get("geodesic"))
	assert.Equal(t, "", form.Get("distanceUnit"))

	_, err = svc.Union(ctx, "[]", 4326)
	require.NoError(t, err)
	assert.NotNil(t, calls["/Geometry/GeometryServer/union"])
}

func TestGeometryOffsetDefaults(t *testing.T) {
	svc, calls := newTestGeometryService(t)

	_, err := svc.Offset(context.Background(), "[]", 4326, 10, nil, "", "", false)
	require.NoError(t, err)

	form := calls["/Geometry/GeometryServer/offset"]
	require.NotNil(t, form)
	assert.Equal(t, "esriGeometryOffsetRounded", form.Get("offsetHow"))
	assert.Equal(t, "1.1", form.Get("bevelRatio"))
}

func TestGenericServiceOperation(t *testing.T) {
	svc, calls := newTestGeometryService(t)

	// The generic escape hatch reaches operations with no typed wrapper.
	params := url.Values{}
	params.Set("geometries", "[]")
	_, err := svc.Operation(context.Background(), "fromGeoCoordinateString", params)
	require.NoError(t, err)
	assert.NotNil(t, calls["/Geometry/GeometryServer/fromgeocoordinatestring"])
}
