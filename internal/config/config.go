// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Encode   EncodeConfig `mapstructure:"encode"`
	Output   OutputConfig `mapstructure:"output"`
	Server   ServerConfig `mapstructure:"server"`
	S3       S3Config     `mapstructure:"s3"`
}

type EncodeConfig struct {
	Format       string `mapstructure:"format"`
	Mono         bool   `mapstructure:"mono"`
	FoldSurround bool   `mapstructure:"fold_surround"`
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	Jobs int    `mapstructure:"jobs"`
}

type ServerConfig struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	Workers        int           `mapstructure:"workers"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// S3Config selects the bucket used for delivery. Endpoint is only set for
// S3 compatible stores (MinIO and the like).
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Encode: EncodeConfig{
			Format:       "pcm16",
			Mono:         false,
			FoldSurround: true,
		},
		Output: OutputConfig{
			Dir:  ".",
			Jobs: 4,
		},
		Server: ServerConfig{
			ListenAddr:     ":8080",
			MaxBodyBytes:   64 << 20,
			Workers:        4,
			RequestTimeout: 60 * time.Second,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":            "log_level",
	"format":               "encode.format",
	"mono":                 "encode.mono",
	"fold-surround":        "encode.fold_surround",
	"out-dir":              "output.dir",
	"jobs":                 "output.jobs",
	"listen-addr":          "server.listen_addr",
	"max-body-bytes":       "server.max_body_bytes",
	"workers":              "server.workers",
	"request-timeout":      "server.request_timeout",
	"s3-bucket":            "s3.bucket",
	"s3-prefix":            "s3.prefix",
	"s3-region":            "s3.region",
	"s3-endpoint":          "s3.endpoint",
	"s3-access-key-id":     "s3.access_key_id",
	"s3-secret-access-key": "s3.secret_access_key",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
	fs.String("format", defaults.Encode.Format, "Output sample format: pcm16|float32")
	fs.Bool("mono", defaults.Encode.Mono, "Downmix every input to mono")
	fs.Bool("fold-surround", defaults.Encode.FoldSurround, "Downmix inputs with more than two channels to mono")
	fs.String("out-dir", defaults.Output.Dir, "Directory for converted files")
	fs.Int("jobs", defaults.Output.Jobs, "Files converted in parallel")
	fs.String("listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int64("max-body-bytes", defaults.Server.MaxBodyBytes, "Largest accepted upload in bytes")
	fs.Int("workers", defaults.Server.Workers, "Concurrent conversions served over HTTP")
	fs.Duration("request-timeout", defaults.Server.RequestTimeout, "Per request conversion timeout (0 disables)")
	fs.String("s3-bucket", defaults.S3.Bucket, "Deliver to this S3 bucket instead of --out-dir")
	fs.String("s3-prefix", defaults.S3.Prefix, "Key prefix inside the bucket")
	fs.String("s3-region", defaults.S3.Region, "S3 region")
	fs.String("s3-endpoint", defaults.S3.Endpoint, "Custom S3 endpoint, enables path-style addressing")
	fs.String("s3-access-key-id", defaults.S3.AccessKeyID, "S3 access key id")
	fs.String("s3-secret-access-key", defaults.S3.SecretAccessKey, "S3 secret access key")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("PCMWAV")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("s3.access_key_id", "PCMWAV_S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"); err != nil {
		return Config{}, fmt.Errorf("bind aws env vars: %w", err)
	}
	if err := v.BindEnv("s3.secret_access_key", "PCMWAV_S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind aws env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("pcmwav")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("encode.format", c.Encode.Format)
	v.SetDefault("encode.mono", c.Encode.Mono)
	v.SetDefault("encode.fold_surround", c.Encode.FoldSurround)
	v.SetDefault("output.dir", c.Output.Dir)
	v.SetDefault("output.jobs", c.Output.Jobs)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_body_bytes", c.Server.MaxBodyBytes)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("s3.bucket", c.S3.Bucket)
	v.SetDefault("s3.prefix", c.S3.Prefix)
	v.SetDefault("s3.region", c.S3.Region)
	v.SetDefault("s3.endpoint", c.S3.Endpoint)
	v.SetDefault("s3.access_key_id", c.S3.AccessKeyID)
	v.SetDefault("s3.secret_access_key", c.S3.SecretAccessKey)
}

// bindFlags ties each registered flag to its nested key. Flags the command
// does not define are skipped. Only flags set on the command line take
// precedence over env and file values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// ParseLogLevel maps a config value onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
