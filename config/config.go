package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/vroomify/vroom/pkg/common"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

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

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "vroom",
		Location: "Asia/Shanghai",
		Workdir:  "/var/vroom",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-vroom-1816-a2dd-502007da3bf6",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "vroom_v1",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/vroom/vroom.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}

	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads YAML configuration from cfile and overlays VROOM_*
// environment variables; a missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	// development environment priority
	if cfile == "" {
		cfile = "vroom.yml"
	}
	if !common.FileExists(cfile) {
		cfile = "/etc/vroom.yml"
	}
	cfg := new(AppConfig)
	if common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		common.Must(err)
		common.Must(yaml.Unmarshal(data, cfg))
	} else {
		cfg = DefaultAppConfig
	}

	setEnvValue("VROOM_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("VROOM_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("VROOM_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("VROOM_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("VROOM_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvIntValue("VROOM_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })

	setEnvValue("VROOM_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("VROOM_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("VROOM_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("VROOM_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("VROOM_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvIntValue("VROOM_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })

	setEnvValue("VROOM_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("VROOM_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "vroom.log")
	}
	return cfg
}
