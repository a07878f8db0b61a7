package schema

// Custom string types for type safety.
type (
	// ComponentKey represents keys used in the quality score breakdown.
	ComponentKey string

	// CheckName identifies one quality check.
	CheckName string

	// Severity represents the severity class of a quality check.
	Severity string

	// CheckStatus represents the outcome of a quality check.
	CheckStatus string

	// GeomStatus represents the validity status of one geometry.
	GeomStatus string

	// GeometryType represents the type of a geometry value.
	GeometryType string

	// ColumnKind represents the resolved value kind of an attribute column.
	ColumnKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// Component keys used in the scoring logic.
const (
	ComponentValidity     ComponentKey = "geometry_validity"
	ComponentCompleteness ComponentKey = "attribute_completeness"
	ComponentCRS          ComponentKey = "crs_defined"
	ComponentNoEmpty      ComponentKey = "no_empty_geometries"
)

// All quality checks, in report order.
const (
	CheckGeometryValidity      CheckName = "geometry_validity"
	CheckEmptyGeometries       CheckName = "empty_geometries"
	CheckDuplicateGeometries   CheckName = "duplicate_geometries"
	CheckCRSDefined            CheckName = "crs_defined"
	CheckAttributeCompleteness CheckName = "attribute_completeness"
	CheckGeometryTypes         CheckName = "geometry_types"
)

// All severities supported.
const (
	HighSeverity   Severity = "high"
	MediumSeverity Severity = "medium"
	LowSeverity    Severity = "low"
)

// All check statuses supported.
const (
	PassStatus CheckStatus = "pass"
	WarnStatus CheckStatus = "warn"
	FailStatus CheckStatus = "fail"
)

// All geometry statuses supported. Exactly one holds per feature.
const (
	ValidGeom   GeomStatus = "valid"
	InvalidGeom GeomStatus = "invalid"
	MissingGeom GeomStatus = "missing"
)

// All geometry types supported.
const (
	PointType              GeometryType = "Point"
	MultiPointType         GeometryType = "MultiPoint"
	LineStringType         GeometryType = "LineString"
	MultiLineStringType    GeometryType = "MultiLineString"
	PolygonType            GeometryType = "Polygon"
	MultiPolygonType       GeometryType = "MultiPolygon"
	GeometryCollectionType GeometryType = "GeometryCollection"
	UnknownType            GeometryType = "Unknown"
)

// All column kinds supported.
const (
	NumericKind  ColumnKind = "numeric"
	TextKind     ColumnKind = "text"
	BooleanKind  ColumnKind = "boolean"
	TemporalKind ColumnKind = "temporal"
	NullKind     ColumnKind = "null"
	OtherKind    ColumnKind = "other"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllChecks lists every quality check in fixed report order.
var AllChecks = []CheckName{
	CheckGeometryValidity,
	CheckEmptyGeometries,
	CheckDuplicateGeometries,
	CheckCRSDefined,
	CheckAttributeCompleteness,
	CheckGeometryTypes,
}

// AllComponents lists every score component in fixed order.
var AllComponents = []ComponentKey{
	ComponentValidity,
	ComponentCompleteness,
	ComponentCRS,
	ComponentNoEmpty,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CheckSeverities maps each quality check to its fixed severity class.
var CheckSeverities = map[CheckName]Severity{
	CheckGeometryValidity:      HighSeverity,
	CheckEmptyGeometries:       MediumSeverity,
	CheckDuplicateGeometries:   MediumSeverity,
	CheckCRSDefined:            HighSeverity,
	CheckAttributeCompleteness: MediumSeverity,
	CheckGeometryTypes:         LowSeverity,
}

// GetScoreWeights returns the fixed component weight map. External QC
// pipelines gate on the resulting score, so these values never vary by
// configuration.
func GetScoreWeights() map[ComponentKey]float64 {
	return map[ComponentKey]float64{
		ComponentValidity:     0.40,
		ComponentCompleteness: 0.30,
		ComponentCRS:          0.15,
		ComponentNoEmpty:      0.15,
	}
}
