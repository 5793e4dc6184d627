package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// DBConfig database connection settings
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// SysConfig process-level settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
}

// WebConfig HTTP listener settings
type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
	// PublicURL, when set, is prepended to resolved upload references
	// returned by the orders listing (e.g. https://shop.example.com).
	PublicURL string `yaml:"public_url" json:"public_url"`
	// UploadDir is where intake attachments are persisted; served under /uploads.
	UploadDir string `yaml:"upload_dir" json:"upload_dir"`
}

// NotifyConfig Telegram notification channel settings
type NotifyConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	BotToken string `yaml:"bot_token" json:"bot_token"`
	ChatID   string `yaml:"chat_id" json:"chat_id"`
	// APIBaseURL is overridable for tests; defaults to the Telegram Bot API.
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`
	Timeout    int    `yaml:"timeout" json:"timeout"` // seconds per send attempt
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Notify   NotifyConfig `yaml:"notify" json:"notify"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "AtelierMireille",
		Location: "Europe/Paris",
		Workdir:  "/var/atelier",
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      4000,
		UploadDir: "uploads",
	},
	Database: DBConfig{
		Type:     "mysql",
		Host:     "127.0.0.1",
		Port:     3306,
		Name:     "am_database",
		User:     "atelier",
		MaxConn:  50,
		IdleConn: 10,
	},
	Notify: NotifyConfig{
		APIBaseURL: "https://api.telegram.org",
		Timeout:    10,
	},
	Logger: LogConfig{
		Mode:     "development",
		Filename: "/var/atelier/atelier.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig loads settings from the YAML file at cfile (if it exists) on
// top of the defaults, then applies ATELIER_* environment overrides.
// Credentials and connection parameters are always externally supplied;
// nothing here is baked in.
func LoadConfig(cfile string) *AppConfig {
	// copy the defaults so repeated loads never mutate the package global
	cfg := *DefaultAppConfig
	appcfg := &cfg
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appcfg)
		}
	}

	setEnvValue("ATELIER_SYSTEM_WORKDIR", &appcfg.System.Workdir)
	setEnvValue("ATELIER_SYSTEM_LOCATION", &appcfg.System.Location)

	setEnvValue("ATELIER_WEB_HOST", &appcfg.Web.Host)
	setEnvIntValue("ATELIER_WEB_PORT", &appcfg.Web.Port)
	setEnvValue("ATELIER_WEB_PUBLIC_URL", &appcfg.Web.PublicURL)
	setEnvValue("ATELIER_WEB_UPLOAD_DIR", &appcfg.Web.UploadDir)

	setEnvValue("ATELIER_DB_TYPE", &appcfg.Database.Type)
	setEnvValue("ATELIER_DB_HOST", &appcfg.Database.Host)
	setEnvIntValue("ATELIER_DB_PORT", &appcfg.Database.Port)
	setEnvValue("ATELIER_DB_NAME", &appcfg.Database.Name)
	setEnvValue("ATELIER_DB_USER", &appcfg.Database.User)
	setEnvValue("ATELIER_DB_PWD", &appcfg.Database.Passwd)
	setEnvIntValue("ATELIER_DB_MAX_CONN", &appcfg.Database.MaxConn)
	setEnvIntValue("ATELIER_DB_IDLE_CONN", &appcfg.Database.IdleConn)

	setEnvBoolValue("ATELIER_NOTIFY_ENABLED", &appcfg.Notify.Enabled)
	setEnvValue("ATELIER_NOTIFY_BOT_TOKEN", &appcfg.Notify.BotToken)
	setEnvValue("ATELIER_NOTIFY_CHAT_ID", &appcfg.Notify.ChatID)
	setEnvIntValue("ATELIER_NOTIFY_TIMEOUT", &appcfg.Notify.Timeout)

	setEnvValue("ATELIER_LOGGER_MODE", &appcfg.Logger.Mode)
	setEnvBoolValue("ATELIER_LOGGER_FILE_ENABLE", &appcfg.Logger.FileEnable)
	setEnvValue("ATELIER_LOGGER_FILENAME", &appcfg.Logger.Filename)

	return appcfg
}
