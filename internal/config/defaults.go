package config

const (
	defaultDataDir = "~/.local/share/albumlink"
	defaultLogDir  = "~/.local/share/albumlink/logs"

	defaultHTTPTimeoutSeconds = 15
	defaultRequestDelayMilli  = 500
	defaultUserAgent          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultCompanionBaseURL     = "http://companion.global"
	defaultDevToolsURL          = "ws://localhost:9222"
	defaultLoadingAppearTimeout = 10
	defaultLoadingDisappear     = 30
	defaultResultsSettle        = 2
	defaultDetailSettle         = 7

	defaultMaxConcurrent = 5

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		HTTP: HTTP{
			TimeoutSeconds:    defaultHTTPTimeoutSeconds,
			RequestDelayMilli: defaultRequestDelayMilli,
			UserAgent:         defaultUserAgent,
		},
		Companion: Companion{
			Enabled:                 true,
			BaseURL:                 defaultCompanionBaseURL,
			DevToolsURL:             defaultDevToolsURL,
			LoadingAppearTimeout:    defaultLoadingAppearTimeout,
			LoadingDisappearTimeout: defaultLoadingDisappear,
			ResultsSettleSeconds:    defaultResultsSettle,
			DetailSettleSeconds:     defaultDetailSettle,
		},
		Resolvers: Resolvers{
			MaxConcurrent: defaultMaxConcurrent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
