package config

// Config is the complete storyreg configuration
type Config struct {
	Log     Log     `koanf:"log"`
	Output  Output  `koanf:"output"`
	Catalog Catalog `koanf:"catalog"`
	Metrics Metrics `koanf:"metrics"`
	Demo    Demo    `koanf:"demo"`
}

// Log holds logging settings
type Log struct {
	// Verbosity: 0 warn, 1 info, 2 debug, 3 trace
	Verbosity int  `koanf:"verbosity" validate:"gte=0,lte=3"`
	File      bool `koanf:"file"`
}

// Output holds export settings
type Output struct {
	Format string `koanf:"format" validate:"oneof=auto term text json yaml toml xml table markdown"`
}

// Catalog holds catalog and render-tracking settings
type Catalog struct {
	// EmitEvents makes the catalog emit storyAdded on the channel
	EmitEvents bool `koanf:"emit_events"`

	// TrackSubscriptions attaches a channel so renders track subscriptions
	TrackSubscriptions bool `koanf:"track_subscriptions"`
}

// Metrics holds metrics settings
type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

// Demo holds settings for the bundled demo stories
type Demo struct {
	// Kinds restricts registration to these kinds; empty registers all
	Kinds []string `koanf:"kinds" validate:"dive,required"`
}
