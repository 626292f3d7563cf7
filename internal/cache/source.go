package cache

// Source tags a list response with where the data came from
type Source string

const (
	SourceCache    Source = "cache"
	SourceDatabase Source = "database"
)
