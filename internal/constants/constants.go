package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ScriptTimeout   = 30 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMs   = 5000
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	BrowseLimit            = 100
	RecentMatchLimit       = 10
	FavoriteCharacterLimit = 5
	SearchResultLimit      = 25
)

const (
	DefaultRankMMR    = 1000
	EntitlementActive = "active"
	GrantCurrency     = "GC"
	GrantSource       = "admin_grant"
)
