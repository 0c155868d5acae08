package gtfs

import "time"

type Config struct {
	// Source is a directory, zip file or zip URL. Ignored when the manager is
	// given an explicit TableLoader (for example a gtfsdb client).
	Source string
	// RefreshInterval reloads remote sources periodically; zero disables it.
	RefreshInterval time.Duration
	Verbose         bool
}

func (config Config) refreshEnabled() bool {
	return config.RefreshInterval > 0 && isRemote(config.Source)
}
