package config

type Configuration struct {
	App        App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log        Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB    MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Redis      Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Cloudinary Cloudinary      `mapstructure:"CLOUDINARY" json:"cloudinary" yaml:"cloudinary"`
	Auth       Auth            `mapstructure:"AUTH" json:"auth" yaml:"auth"`
	Telemetry  TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Cron       Cron            `mapstructure:"CRON" yaml:"cron"`
	Fluentd    Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}
