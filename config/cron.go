package config

type Cron struct {
	// 每日重算 startingPrice 的排程（cron spec，含秒），留空用預設
	ReconcileSchedule string `mapstructure:"RECONCILE_SCHEDULE" json:"reconcile_schedule" yaml:"reconcile_schedule"`
}
