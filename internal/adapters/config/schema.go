package config

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int            `toml:"version"`
	Watch       bool           `toml:"watch"`
	Credentials pathSchema     `toml:"credentials"`
	Proxies     pathSchema     `toml:"proxies"`
	API         apiSchema      `toml:"api"`
	Schedule    scheduleSchema `toml:"schedule"`
	Log         logSchema      `toml:"log"`
}

type pathSchema struct {
	Path string `toml:"path"`
}

type apiSchema struct {
	BaseURL string `toml:"base_url"`
	IPURL   string `toml:"ip_url"`
	Timeout string `toml:"timeout"`
}

type scheduleSchema struct {
	Tick        string `toml:"tick"`
	ResyncDelay string `toml:"resync_delay"`
}

type logSchema struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		Version:     currentSchemaVersion,
		Watch:       c.Watch,
		Credentials: pathSchema{Path: c.CredentialsPath},
		Proxies:     pathSchema{Path: c.ProxiesPath},
		API: apiSchema{
			BaseURL: c.API.BaseURL,
			IPURL:   c.API.IPURL,
			Timeout: c.API.Timeout.String(),
		},
		Schedule: scheduleSchema{
			Tick:        c.Schedule.Tick.String(),
			ResyncDelay: c.Schedule.ResyncDelay.String(),
		},
		Log: logSchema{
			Path:  c.Log.Path,
			Level: c.Log.Level,
		},
	}
}
