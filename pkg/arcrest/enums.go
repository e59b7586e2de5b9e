package arcrest

// Service type tags as reported in a catalog's service list.
const (
	ServiceTypeMap      = "MapServer"
	ServiceTypeFeature  = "FeatureServer"
	ServiceTypeGeometry = "GeometryServer"
	ServiceTypeGeocode  = "GeocodeServer"
	ServiceTypeGP       = "GPServer"
	ServiceTypeImage    = "ImageServer"
	ServiceTypeNetwork  = "NetworkServer"
	ServiceTypeGeodata  = "GeodataServer"
	ServiceTypeGlobe    = "GlobeServer"
	ServiceTypeMobile   = "MobileServer"
)

// Spatial relationships accepted by the query operation.
const (
	SpatialRelIntersects         = "esriSpatialRelIntersects"
	SpatialRelContains           = "esriSpatialRelContains"
	SpatialRelCrosses            = "esriSpatialRelCrosses"
	SpatialRelEnvelopeIntersects = "esriSpatialRelEnvelopeIntersects"
	SpatialRelIndexIntersects    = "esriSpatialRelIndexIntersects"
	SpatialRelOverlaps           = "esriSpatialRelOverlaps"
	SpatialRelTouches            = "esriSpatialRelTouches"
	SpatialRelWithin             = "esriSpatialRelWithin"
	SpatialRelRelation           = "esriSpatialRelRelation"
)

// Geometry types accepted by query and geometry operations.
const (
	GeometryPoint      = "esriGeometryPoint"
	GeometryMultipoint = "esriGeometryMultipoint"
	GeometryPolyline   = "esriGeometryPolyline"
	GeometryPolygon    = "esriGeometryPolygon"
	GeometryEnvelope   = "esriGeometryEnvelope"
)

// Geometry relations accepted by the relation operation.
const (
	GeometryRelationCross                = "esriGeometryRelationCross"
	GeometryRelationDisjoint             = "esriGeometryRelationDisjoint"
	GeometryRelationIn                   = "esriGeometryRelationIn"
	GeometryRelationInteriorIntersection = "esriGeometryRelationInteriorIntersection"
	GeometryRelationIntersection         = "esriGeometryRelationIntersection"
	GeometryRelationLineCoincidence      = "esriGeometryRelationLineCoincidence"
	GeometryRelationLineTouch            = "esriGeometryRelationLineTouch"
	GeometryRelationOverlap              = "esriGeometryRelationOverlap"
	GeometryRelationPointTouch           = "esriGeometryRelationPointTouch"
	GeometryRelationTouch                = "esriGeometryRelationTouch"
	GeometryRelationWithin               = "esriGeometryRelationWithin"
	GeometryRelationRelation             = "esriGeometryRelationRelation"
)

// Job statuses reported by geoprocessing services. The first six are
// non-terminal; the last five are terminal.
const (
	JobNew        = "esriJobNew"
	JobSubmitted  = "esriJobSubmitted"
	JobWaiting    = "esriJobWaiting"
	JobExecuting  = "esriJobExecuting"
	JobCancelling = "esriJobCancelling"
	JobDeleting   = "esriJobDeleting"

	JobSucceeded = "esriJobSucceeded"
	JobFailed    = "esriJobFailed"
	JobTimedOut  = "esriJobTimedOut"
	JobCancelled = "esriJobCancelled"
	JobDeleted   = "esriJobDeleted"
)

var terminalJobStatuses = map[string]struct{}{
	JobSucceeded: {},
	JobFailed:    {},
	JobTimedOut:  {},
	JobCancelled: {},
	JobDeleted:   {},
}

var nonTerminalJobStatuses = map[string]struct{}{
	JobNew:        {},
	JobSubmitted:  {},
	JobWaiting:    {},
	JobExecuting:  {},
	JobCancelling: {},
	JobDeleting:   {},
}

// TerminalJobStatus reports whether status is one of the five terminal job
// statuses. Unknown strings are treated as non-terminal, so a newer server's
// in-between statuses keep the polling loop alive.
func TerminalJobStatus(status string) bool {
	_, ok := terminalJobStatuses[status]
	return ok
}

// KnownJobStatus reports whether status is one of the eleven documented job
// status tags.
func KnownJobStatus(status string) bool {
	if _, ok := terminalJobStatuses[status]; ok {
		return true
	}
	_, ok := nonTerminalJobStatuses[status]
	return ok
}
