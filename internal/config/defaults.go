package config

const (
	defaultDataDir                  = "~/.local/share/shifttrack"
	defaultLogDir                   = "~/.local/share/shifttrack/logs"
	defaultDatabasePath             = "~/.local/share/shifttrack/shifttrack.db"
	defaultAPIBind                  = "127.0.0.1:7493"
	defaultCurrency                 = "USD"
	defaultLocale                   = "en-US"
	defaultAuditExtractTimeout      = 30
	defaultAuditMaxDocumentMiB      = 16
	defaultNotifyRequestTimeout     = 10
	defaultNotifyDedupWindowSeconds = 600
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultLogRetentionDays         = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
			APIBind:      defaultAPIBind,
		},
		Wages: Wages{
			Currency: defaultCurrency,
			Locale:   defaultLocale,
		},
		Audit: Audit{
			ExtractTimeout: defaultAuditExtractTimeout,
			MaxDocumentMiB: defaultAuditMaxDocumentMiB,
		},
		Notifications: Notifications{
			RequestTimeout:     defaultNotifyRequestTimeout,
			Shifts:             true,
			Audit:              true,
			Errors:             true,
			DedupWindowSeconds: defaultNotifyDedupWindowSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
