package arcrest

import (
	"context"
	"net/url"
	"strings"
)

// AnyService is implemented by every typed service handle. Callers that need
// a service's specific operations type-switch to the concrete handle.
type AnyService interface {
	URL() string
	ServiceType() string
}

// Service is the generic REST service handle. Typed services embed it; it can
// also be used directly against an endpoint for which no typed handle exists.
type Service struct {
	*Resource
	serviceType string
}

// NewService fetches url and returns a generic service handle tagged with the
// given service type.
func NewService(ctx context.Context, client *Client, url, serviceType string) (*Service, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &Service{Resource: res, serviceType: serviceType}, nil
}

// ServiceType returns the server-reported type tag the handle was resolved
// with, e.g. "MapServer".
func (s *Service) ServiceType() string {
	return s.serviceType
}

// Operation invokes a named operation of this service, form-POSTing params to
// <service>/<operation> and returning the decoded response. The operation
// name is lower-cased in the URL. This is the generic escape hatch: it works
// for any operation the server exposes, including ones no convenience wrapper
// covers yet.
func (s *Service) Operation(ctx context.Context, operation string, params url.Values) (Document, error) {
	if params == nil {
		params = url.Values{}
	}
	return s.client.FetchDocument(ctx, Join(s.url, strings.ToLower(operation)), params)
}

// MapService is a handle to a MapServer endpoint. Map tile, WMTS, and KML
// image endpoints are not exposed.
type MapService struct {
	Service
}

// FeatureService is a handle to a FeatureServer endpoint. Feature services
// are treated as map services; no distinction is made between layers and
// feature layers.
type FeatureService struct {
	MapService
}

// GeometryService is a handle to a GeometryServer endpoint; see geometry.go
// for its typed operations.
type GeometryService struct {
	Service
}

// GPService is a handle to a GPServer geoprocessing endpoint; see gp.go.
type GPService struct {
	Service
}

// GeocodeService is a handle to a GeocodeServer endpoint. Each geocode server
// has its own input conventions, so no convenience methods are provided; use
// Operation for findAddressCandidates, reverseGeocode, or geocodeAddresses.
type GeocodeService struct {
	Service
}

// ImageService is a handle to an ImageServer endpoint.
type ImageService struct {
	Service
}

// NetworkService is a handle to a NetworkServer endpoint.
type NetworkService struct {
	Service
}

// GeodataService is a handle to a GeodataServer endpoint.
type GeodataService struct {
	Service
}

// GlobeService is a handle to a GlobeServer endpoint.
type GlobeService struct {
	Service
}

// MobileService is a handle to a MobileServer endpoint.
type MobileService struct {
	Service
}

// serviceRegistry maps server-reported service type tags to handle
// constructors. A tag absent from this table fails resolution with
// ErrUnsupportedServiceType.
var serviceRegistry = map[string]func(*Resource) AnyService{
	ServiceTypeMap: func(r *Resource) AnyService {
		return &MapService{Service{Resource: r, serviceType: ServiceTypeMap}}
	},
	ServiceTypeFeature: func(r *Resource) AnyService {
		return &FeatureService{MapService{Service{Resource: r, serviceType: ServiceTypeFeature}}}
	},
	ServiceTypeGeometry: func(r *Resource) AnyService {
		return &GeometryService{Service{Resource: r, serviceType: ServiceTypeGeometry}}
	},
	ServiceTypeGeocode: func(r *Resource) AnyService {
		return &GeocodeService{Service{Resource: r, serviceType: ServiceTypeGeocode}}
	},
	ServiceTypeGP: func(r *Resource) AnyService {
		return &GPService{Service{Resource: r, serviceType: ServiceTypeGP}}
	},
	ServiceTypeImage: func(r *Resource) AnyService {
		return &ImageService{Service{Resource: r, serviceType: ServiceTypeImage}}
	},
	ServiceTypeNetwork: func(r *Resource) AnyService {
		return &NetworkService{Service{Resource: r, serviceType: ServiceTypeNetwork}}
	},
	ServiceTypeGeodata: func(r *Resource) AnyService {
		return &GeodataService{Service{Resource: r, serviceType: ServiceTypeGeodata}}
	},
	ServiceTypeGlobe: func(r *Resource) AnyService {
		return &GlobeService{Service{Resource: r, serviceType: ServiceTypeGlobe}}
	},
	ServiceTypeMobile: func(r *Resource) AnyService {
		return &MobileService{Service{Resource: r, serviceType: ServiceTypeMobile}}
	},
}

// NewMapService fetches url and returns a MapServer handle.
func NewMapService(ctx context.Context, client *Client, url string) (*MapService, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &MapService{Service{Resource: res, serviceType: ServiceTypeMap}}, nil
}

// NewFeatureService fetches url and returns a FeatureServer handle.
func NewFeatureService(ctx context.Context, client *Client, url string) (*FeatureService, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &FeatureService{MapService{Service{Resource: res, serviceType: ServiceTypeFeature}}}, nil
}

// NewGeometryService fetches url and returns a GeometryServer handle.
func NewGeometryService(ctx context.Context, client *Client, url string) (*GeometryService, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &GeometryService{Service{Resource: res, serviceType: ServiceTypeGeometry}}, nil
}

// NewGPService fetches url and returns a GPServer handle.
func NewGPService(ctx context.Context, client *Client, url string) (*GPService, error) {
	res, err := NewResource(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return &GPService{Service{Resource: res, serviceType: ServiceTypeGP}}, nil
}
