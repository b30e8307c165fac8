package config

type Cloudinary struct {
	CloudName string `mapstructure:"CLOUD_NAME" json:"cloud_name" yaml:"cloud_name"`
	APIKey    string `mapstructure:"API_KEY" json:"api_key" yaml:"api_key"`
	APISecret string `mapstructure:"API_SECRET" json:"api_secret" yaml:"api_secret"`
	// 上傳 API base URL，可覆寫供測試使用
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	// 資產資料夾前綴，例如 coliving
	FolderPrefix string `mapstructure:"FOLDER_PREFIX" json:"folder_prefix" yaml:"folder_prefix"`
	// 單檔上傳大小上限（bytes），預設 5 MiB
	MaxUploadBytes int64 `mapstructure:"MAX_UPLOAD_BYTES" json:"max_upload_bytes" yaml:"max_upload_bytes"`
}
