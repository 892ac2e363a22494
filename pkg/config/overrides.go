package config

// Overrides are values set on the command line for one run. They sit on top
// of the file config and are never written back to it.
type Overrides struct {
	MinLetters   int   // 0 keeps the file value
	MaxLetters   int   // 0 keeps the file value
	EnableFilter *bool // nil keeps the file value
	DictPath     string
	DictFormat   string
	MetricsAddr  string
}

// Apply returns a sanitized copy of base with the overrides set. base is not modified.
func (o Overrides) Apply(base *Config) *Config {
	cfg := *base
	if o.MinLetters > 0 {
		cfg.Server.MinLetters = o.MinLetters
	}
	if o.MaxLetters > 0 {
		cfg.Server.MaxLetters = o.MaxLetters
	}
	if o.EnableFilter != nil {
		cfg.Server.EnableFilter = *o.EnableFilter
	}
	if o.DictPath != "" {
		cfg.Dict.Path = o.DictPath
	}
	if o.DictFormat != "" {
		cfg.Dict.Format = o.DictFormat
	}
	if o.MetricsAddr != "" {
		cfg.Server.MetricsAddr = o.MetricsAddr
	}
	cfg.Sanitize()
	return &cfg
}

// Release drops the overrides for server values a client just set
// explicitly, so the newer value takes effect.
func (o *Overrides) Release(minLetters, maxLetters *int, enableFilter *bool) {
	if minLetters != nil {
		o.MinLetters = 0
	}
	if maxLetters != nil {
		o.MaxLetters = 0
	}
	if enableFilter != nil {
		o.EnableFilter = nil
	}
}
