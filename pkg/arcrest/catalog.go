package arcrest

import (
	"context"
	"fmt"
)

// Catalog is a handle to the root or an intermediate directory node of a
// server's REST hierarchy, containing named folders and named services.
type Catalog struct {
	*Resource
}

// NewCatalog fetches url and returns a catalog handle.
func NewCatalog(ctx context.Context, client *Client, url string) (*Catalog, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Catalog{Resource: res}, nil
}

// Folders returns the names of the subfolders of this catalog.
func (c *Catalog) Folders() []string {
	return c.Doc.Strings("folders")
}

// FolderByName resolves the named subfolder to a catalog handle rooted one
// level deeper. A name absent from the folder list is ErrNotFound.
func (c *Catalog) FolderByName(ctx context.Context, name string) (*Catalog, error) {
	for _, fi := range c.Folders() {
		if fi == name {
			return NewCatalog(ctx, c.client, Join(c.url, name))
		}
	}
	return nil, fmt.Errorf("folder %q: %w", name, ErrNotFound)
}

// FolderByIndex resolves the subfolder at position i of the folder list.
func (c *Catalog) FolderByIndex(ctx context.Context, i int) (*Catalog, error) {
	folders := c.Folders()
	if i < 0 || i >= len(folders) {
		return nil, fmt.Errorf("folder index %d of %d: %w", i, len(folders), ErrNotFound)
	}
	return c.FolderByName(ctx, folders[i])
}

// AllFolders resolves every subfolder, one fetch per folder.
func (c *Catalog) AllFolders(ctx context.Context) ([]*Catalog, error) {
	var folders []*Catalog
	for _, fi := range c.Folders() {
		folder, err := NewCatalog(ctx, c.client, Join(c.url, fi))
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

// ServiceEntries returns the raw service list entries of the catalog
// document. Each entry carries at least "name" and "type".
func (c *Catalog) ServiceEntries() []Document {
	return c.Doc.Maps("services")
}

// ServiceByName resolves the named service to a typed handle chosen by the
// server-reported type tag. An unregistered tag is
// ErrUnsupportedServiceType; a name absent from the service list is
// ErrNotFound. There is no partial or fuzzy matching.
func (c *Catalog) ServiceByName(ctx context.Context, name string) (AnyService, error) {
	for _, si := range c.ServiceEntries() {
		if si.Str("name") == name {
			return c.resolveService(ctx, si)
		}
	}
	return nil, fmt.Errorf("service %q: %w", name, ErrNotFound)
}

// ServiceByIndex resolves the service at position i of the service list.
func (c *Catalog) ServiceByIndex(ctx context.Context, i int) (AnyService, error) {
	entries := c.ServiceEntries()
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("service index %d of %d: %w", i, len(entries), ErrNotFound)
	}
	return c.resolveService(ctx, entries[i])
}

// Services resolves every service of the catalog, one fetch per service.
func (c *Catalog) Services(ctx context.Context) ([]AnyService, error) {
	var services []AnyService
	for _, si := range c.ServiceEntries() {
		service, err := c.resolveService(ctx, si)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, nil
}

func (c *Catalog) resolveService(ctx context.Context, entry Document) (AnyService, error) {
	name := entry.Str("name")
	typ := entry.Str("type")
	build, ok := serviceRegistry[typ]
	if !ok {
		return nil, fmt.Errorf("service %q type %q: %w", name, typ, ErrUnsupportedServiceType)
	}
	res, err := NewResource(ctx, c.client, Join(c.url, name, typ))
	if err != nil {
		return nil, err
	}
	return build(res), nil
}
