package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  Logger
	Worker  WorkerConfig
	Whisper WhisperConfig
	Tools   ToolsConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type WorkerConfig struct {
	// WorkDir is the parent directory for per-job scoped workspaces.
	WorkDir           string
	MaxCPUUsage       float64
	DownloadTimeout   time.Duration
	ExtractTimeout    time.Duration
	ProbeTimeout      time.Duration
	TranscribeTimeout time.Duration
	AnalyzerTimeout   time.Duration
	UploadTimeout     time.Duration
	NotifierTimeout   time.Duration
}

type WhisperConfig struct {
	Bin             string
	ModelDir        string
	DefaultLanguage string
	DefaultModel    string
}

type ToolsConfig struct {
	YtDlpPath   string
	FFmpegPath  string
	FFprobePath string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Worker.WorkDir == "" {
		c.Worker.WorkDir = "tmp_jobs"
	}
	if c.Worker.DownloadTimeout == 0 {
		c.Worker.DownloadTimeout = 10 * time.Minute
	}
	if c.Worker.ExtractTimeout == 0 {
		c.Worker.ExtractTimeout = 3 * time.Minute
	}
	if c.Worker.ProbeTimeout == 0 {
		c.Worker.ProbeTimeout = 30 * time.Second
	}
	if c.Worker.TranscribeTimeout == 0 {
		c.Worker.TranscribeTimeout = 30 * time.Minute
	}
	if c.Worker.AnalyzerTimeout == 0 {
		c.Worker.AnalyzerTimeout = 120 * time.Second
	}
	if c.Worker.UploadTimeout == 0 {
		c.Worker.UploadTimeout = 120 * time.Second
	}
	if c.Worker.NotifierTimeout == 0 {
		c.Worker.NotifierTimeout = 15 * time.Second
	}
	if c.Whisper.DefaultLanguage == "" {
		c.Whisper.DefaultLanguage = "pt"
	}
	if c.Whisper.DefaultModel == "" {
		c.Whisper.DefaultModel = "base"
	}
}
