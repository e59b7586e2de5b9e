package arcrest

import (
	"context"
	"fmt"
	"net/url"
)

// TopLevelParentID is the parentLayerId reported for layers with no parent.
const TopLevelParentID = -1

// LayerEntries returns the raw layer list entries of the service document.
func (s *MapService) LayerEntries() []Document {
	return s.Doc.Maps("layers")
}

// TableEntries returns the raw table list entries of the service document.
func (s *MapService) TableEntries() []Document {
	return s.Doc.Maps("tables")
}

// LayerNames returns the names of the service's layers.
func (s *MapService) LayerNames() []string {
	var names []string
	for _, li := range s.LayerEntries() {
		names = append(names, li.Str("name"))
	}
	return names
}

// TableNames returns the names of the service's tables.
func (s *MapService) TableNames() []string {
	var names []string
	for _, ti := range s.TableEntries() {
		names = append(names, ti.Str("name"))
	}
	return names
}

// LayerByID fetches the layer with the given id.
func (s *MapService) LayerByID(ctx context.Context, id int) (*Layer, error) {
	return NewLayer(ctx, s.client, Join(s.url, id))
}

// LayerByName resolves a layer by name, first match over the service's layer
// list. Unlike catalog resolution this is a deliberate maybe-absent query:
// a name with no match returns (nil, nil).
func (s *MapService) LayerByName(ctx context.Context, name string) (*Layer, error) {
	for _, li := range s.LayerEntries() {
		if li.Str("name") == name {
			return s.LayerByID(ctx, li.Int("id"))
		}
	}
	return nil, nil
}

// TableByID fetches the table with the given id.
func (s *MapService) TableByID(ctx context.Context, id int) (*Table, error) {
	return NewLayer(ctx, s.client, Join(s.url, id))
}

// TableByName resolves a table by name, first match over the service's table
// list; (nil, nil) when absent.
func (s *MapService) TableByName(ctx context.Context, name string) (*Table, error) {
	for _, ti := range s.TableEntries() {
		if ti.Str("name") == name {
			return s.TableByID(ctx, ti.Int("id"))
		}
	}
	return nil, nil
}

// Layers fetches every layer of the service, one round trip per layer.
func (s *MapService) Layers(ctx context.Context) ([]*Layer, error) {
	var layers []*Layer
	for _, li := range s.LayerEntries() {
		lr, err := s.LayerByID(ctx, li.Int("id"))
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", li.Str("name"), err)
		}
		layers = append(layers, lr)
	}
	return layers, nil
}

// LayersByParent fetches the layers whose parentLayerId equals parentID.
// Pass TopLevelParentID for the top-level layers.
func (s *MapService) LayersByParent(ctx context.Context, parentID int) ([]*Layer, error) {
	var layers []*Layer
	for _, li := range s.LayerEntries() {
		pid := TopLevelParentID
		if li.Has("parentLayerId") {
			pid = li.Int("parentLayerId")
		}
		if pid != parentID {
			continue
		}
		lr, err := s.LayerByID(ctx, li.Int("id"))
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", li.Str("name"), err)
		}
		layers = append(layers, lr)
	}
	return layers, nil
}

// Tables fetches every table of the service, one round trip per table.
func (s *MapService) Tables(ctx context.Context) ([]*Table, error) {
	var tables []*Table
	for _, ti := range s.TableEntries() {
		tb, err := s.TableByID(ctx, ti.Int("id"))
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", ti.Str("name"), err)
		}
		tables = append(tables, tb)
	}
	return tables, nil
}

// Export is the raw interface for the export operation; params are forwarded
// verbatim.
func (s *MapService) Export(ctx context.Context, params url.Values) (Document, error) {
	return s.Operation(ctx, "export", params)
}

// Identify is the raw interface for the identify operation.
func (s *MapService) Identify(ctx context.Context, params url.Values) (Document, error) {
	return s.Operation(ctx, "identify", params)
}

// Find is the raw interface for the find operation.
func (s *MapService) Find(ctx context.Context, params url.Values) (Document, error) {
	return s.Operation(ctx, "find", params)
}
