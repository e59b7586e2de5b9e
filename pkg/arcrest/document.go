package arcrest

import "context"

// Document is the JSON metadata fetched from a REST endpoint, decoded into a
// generic mapping. Servers of different versions report different optional
// fields, so accessors return the zero value for missing or mistyped keys
// rather than failing; callers that must distinguish "missing" from "present
// but empty" can use Has or index the map directly.
type Document map[string]any

// Has reports whether key is present in the document.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Str returns the string value for key, or "" if absent or not a string.
func (d Document) Str(key string) string {
	s, _ := d[key].(string)
	return s
}

// Float returns the numeric value for key, or 0 if absent or not a number.
func (d Document) Float(key string) float64 {
	f, _ := d[key].(float64)
	return f
}

// Int returns the numeric value for key truncated to int, or 0 if absent.
func (d Document) Int(key string) int {
	return int(d.Float(key))
}

// Bool returns the boolean value for key, or false if absent.
func (d Document) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// List returns the list value for key, or nil if absent or not a list.
func (d Document) List(key string) []any {
	l, _ := d[key].([]any)
	return l
}

// Map returns the nested mapping for key as a Document, or nil if absent.
func (d Document) Map(key string) Document {
	m, _ := d[key].(map[string]any)
	return m
}

// Strings returns the list value for key keeping only its string elements.
func (d Document) Strings(key string) []string {
	var out []string
	for _, v := range d.List(key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Maps returns the list value for key keeping only its mapping elements.
func (d Document) Maps(key string) []Document {
	var out []Document
	for _, v := range d.List(key) {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Resource is the common shape of every handle in the service hierarchy:
// an endpoint URL plus the document fetched from it. The URL is immutable
// after construction; the document changes only through Refresh.
type Resource struct {
	url    string
	client *Client

	// Doc is the endpoint document as of the last fetch.
	Doc Document
}

// NewResource fetches url and returns a handle over the decoded document.
// Construction performs exactly one round trip.
func NewResource(ctx context.Context, client *Client, url string) (*Resource, error) {
	doc, err := client.FetchDocument(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Resource{url: url, client: client, Doc: doc}, nil
}

// URL returns the endpoint URL the resource was constructed with.
func (r *Resource) URL() string {
	return r.url
}

// Client returns the client the resource fetches through.
func (r *Resource) Client() *Client {
	return r.client
}

// Refresh re-fetches the endpoint document, replacing Doc. This is the only
// way a handle's cached state changes.
func (r *Resource) Refresh(ctx context.Context) error {
	doc, err := r.client.FetchDocument(ctx, r.url, nil)
	if err != nil {
		return err
	}
	r.Doc = doc
	return nil
}
