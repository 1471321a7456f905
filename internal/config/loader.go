package config

import "time"

// Loader builds a Config from defaults, the environment and flag overrides,
// in that order of increasing priority.
type Loader struct {
	config *Config
}

func NewLoader() *Loader {
	return &Loader{config: NewConfig()}
}

// Load applies the environment on top of the defaults and validates.
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides is Load followed by the command line overrides. The
// merged result is normalized and validated once.
func (l *Loader) LoadWithOverrides(overrides *Overrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if overrides != nil {
		overrides.Apply(l.config)
	}
	l.config.Normalize()
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// Overrides holds command line flag values. Nil fields leave the
// configuration untouched.
type Overrides struct {
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	Owner          *string
	ServerAddr     *string
	Timeout        *time.Duration
	Verbose        *bool
	ExportFormat   *string
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Apply copies every set override into config.
func (o *Overrides) Apply(config *Config) {
	override(&config.Database.Dir, o.DBDir)
	override(&config.Database.Filename, o.DBFilename)
	override(&config.Database.QueryTimeout, o.DBQueryTimeout)
	override(&config.Tasks.DefaultOwner, o.Owner)
	override(&config.Server.Addr, o.ServerAddr)
	override(&config.Application.Timeout, o.Timeout)
	override(&config.Application.Verbose, o.Verbose)
	override(&config.Export.DefaultFormat, o.ExportFormat)
}
