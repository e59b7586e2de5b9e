package arcrest

import (
	"context"
	"net/url"
	"strings"
)

// Layer is a handle to one queryable dataset of a map or feature service.
// No distinction is made between mapping, feature, and image layers; the
// query operation works the same against each.
type Layer struct {
	*Resource
}

// Table is a layer without geometry; it shares the Layer interface.
type Table = Layer

// NewLayer fetches url and returns a layer handle.
func NewLayer(ctx context.Context, client *Client, url string) (*Layer, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Layer{Resource: res}, nil
}

// Fields returns the layer's field descriptors.
func (l *Layer) Fields() []Document {
	return l.Doc.Maps("fields")
}

// FieldNames returns the names of the layer's fields.
func (l *Layer) FieldNames() []string {
	var names []string
	for _, f := range l.Fields() {
		names = append(names, f.Str("name"))
	}
	return names
}

// FieldByName returns the descriptor of the named field, or nil if the layer
// has no such field.
func (l *Layer) FieldByName(name string) Document {
	for _, f := range l.Fields() {
		if f.Str("name") == name {
			return f
		}
	}
	return nil
}

// FieldByAlias returns the descriptor of the first field with the given
// alias, or nil if no field matches.
func (l *Layer) FieldByAlias(alias string) Document {
	for _, f := range l.Fields() {
		if f.Str("alias") == alias {
			return f
		}
	}
	return nil
}

// ParentLayer resolves the layer's parent layer by rebuilding a sibling URL
// one path segment up with the parent's id. Returns (nil, nil) when the layer
// has no parent.
func (l *Layer) ParentLayer(ctx context.Context) (*Layer, error) {
	parent := l.Doc.Map("parentLayer")
	if parent == nil {
		return nil, nil
	}
	base := strings.TrimRight(l.url, "/")
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[:i]
	}
	return NewLayer(ctx, l.client, Join(base, parent.Int("id")))
}

// Query forwards params verbatim to the layer's query endpoint and returns
// the decoded response. This is the escape hatch for any query capability the
// convenience forms do not model; the client performs no validation and
// trusts the server to reject malformed requests.
func (l *Layer) Query(ctx context.Context, params url.Values) (Document, error) {
	if params == nil {
		params = url.Values{}
	}
	return l.client.FetchDocument(ctx, Join(l.url, "query"), params)
}

// QueryParams is the well-known parameter set of the query operation.
// Values mirror the server's own parameter shapes: spatial references as
// WKID or JSON, geometry as JSON or a simplified string such as
// "-100,35,-99,36", spatialRel drawn from the SpatialRel constants. Fields
// left at their zero value are omitted except the three return flags, which
// are always sent. Extra carries version-specific parameters the struct does
// not name; they are merged last and win on conflict.
type QueryParams struct {
	Text               string
	Geometry           string
	GeometryType       string
	InSR               string
	SpatialRel         string
	RelationParam      string
	ObjectIDs          string
	Where              string
	Time               string
	ReturnCountOnly    bool
	ReturnIDsOnly      bool
	ReturnGeometry     bool
	MaxAllowableOffset string
	OutSR              string
	OutFields          string
	Extra              url.Values
}

// DefaultQueryParams returns the query defaults: all fields, geometry
// included.
func DefaultQueryParams() QueryParams {
	return QueryParams{ReturnGeometry: true, OutFields: "*"}
}

// Values encodes the parameter set for the query endpoint.
func (p QueryParams) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("text", p.Text)
	set("geometry", p.Geometry)
	set("geometryType", p.GeometryType)
	set("inSR", p.InSR)
	set("spatialRel", p.SpatialRel)
	set("relationParam", p.RelationParam)
	set("objectIds", p.ObjectIDs)
	set("where", p.Where)
	set("time", p.Time)
	set("maxAllowableOffset", p.MaxAllowableOffset)
	set("outSR", p.OutSR)
	set("outFields", p.OutFields)
	v.Set("returnCountOnly", paramString(p.ReturnCountOnly))
	v.Set("returnIdsOnly", paramString(p.ReturnIDsOnly))
	v.Set("returnGeometry", paramString(p.ReturnGeometry))
	for k, vs := range p.Extra {
		v[k] = vs
	}
	return v
}

// QueryFiltered dispatches the well-known parameter set to Query.
func (l *Layer) QueryFiltered(ctx context.Context, p QueryParams) (Document, error) {
	return l.Query(ctx, p.Values())
}

// QueryWhere is the minimal convenience form for the common "text filter plus
// field list" case. An empty outFields selects all fields. Extra parameters
// are merged last and win on conflict.
func (l *Layer) QueryWhere(ctx context.Context, where, outFields string, extra url.Values) (Document, error) {
	if outFields == "" {
		outFields = "*"
	}
	params := url.Values{}
	params.Set("where", where)
	params.Set("outFields", outFields)
	for k, vs := range extra {
		params[k] = vs
	}
	return l.Query(ctx, params)
}
