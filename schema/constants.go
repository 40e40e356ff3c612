package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// AnchorPolicy represents how proto files anchor co-change pairs.
	AnchorPolicy string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut      OutputMode = "csv"
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	MarkdownOut OutputMode = "md"
)

// All anchor policies supported.
const (
	// EachAnchor treats every proto file in a transaction as an independent
	// anchor, so two protos changing together produce directed pairs both ways.
	EachAnchor AnchorPolicy = "each" // default

	// MergedAnchor collapses all proto files of a transaction into one
	// virtual anchor and pairs it with the non-proto files only.
	MergedAnchor AnchorPolicy = "merged"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:      {},
	TextOut:     {},
	JSONOut:     {},
	MarkdownOut: {},
}

// ValidAnchorPolicies lists all valid anchor policies.
var ValidAnchorPolicies = map[AnchorPolicy]struct{}{
	EachAnchor:   {},
	MergedAnchor: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
