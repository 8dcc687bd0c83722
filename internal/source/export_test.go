package source

// Hooks for the external test package.
var (
	CatalogFor      = catalogFor
	SplitSqliteType = splitSqliteType
)
