package config

type Auth struct {
	// 後台唯一管理者帳密（刻意寫死於設定，無使用者系統）
	AdminUsername string `mapstructure:"ADMIN_USERNAME" json:"admin_username" yaml:"admin_username"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD" json:"admin_password" yaml:"admin_password"`
	// JWT 簽章密鑰與效期
	TokenSecret     string `mapstructure:"TOKEN_SECRET" json:"token_secret" yaml:"token_secret"`
	TokenTTLMinutes int64  `mapstructure:"TOKEN_TTL_MINUTES" json:"token_ttl_minutes" yaml:"token_ttl_minutes"`
	// 登入嘗試限流（Redis fixed window）
	LoginLimitCount int   `mapstructure:"LOGIN_LIMIT_COUNT" json:"login_limit_count" yaml:"login_limit_count"`
	LoginWindowSecs int64 `mapstructure:"LOGIN_WINDOW_SECS" json:"login_window_secs" yaml:"login_window_secs"`
}
