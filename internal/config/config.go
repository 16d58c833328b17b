package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Packs     PacksConfig     `mapstructure:"packs"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PacksConfig struct {
	BaseDir string `mapstructure:"base_dir"`
	Name    string `mapstructure:"name"`
}

type TokenizerConfig struct {
	DictPath      string `mapstructure:"dict_path"`
	Inflect       bool   `mapstructure:"inflect"`
	SplitAffixes  bool   `mapstructure:"split_affixes"`
	MergeDagdra   bool   `mapstructure:"merge_dagdra"`
	FillLemmas    bool   `mapstructure:"fill_lemmas"`
	PickSenses    bool   `mapstructure:"pick_senses"`
	SpacesAsPunct bool   `mapstructure:"spaces_as_punct"`
	Normalize     bool   `mapstructure:"normalize"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
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
		Packs: PacksConfig{
			BaseDir: "",
			Name:    "general",
		},
		Tokenizer: TokenizerConfig{
			DictPath:      "",
			Inflect:       true,
			SplitAffixes:  true,
			MergeDagdra:   true,
			FillLemmas:    true,
			PickSenses:    true,
			SpacesAsPunct: false,
			Normalize:     true,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         2,
			MaxTextBytes:    65536,
			RequestTimeout:  60,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("packs-base-dir", defaults.Packs.BaseDir, "Directory dialect packs are stored in")
	fs.String("packs-name", defaults.Packs.Name, "Dialect pack name")
	fs.String("pack", defaults.Packs.Name, "Dialect pack name (alias for --packs-name)")
	fs.String("tokenizer-dict-path", defaults.Tokenizer.DictPath, "Path to a dictionary TSV file (used instead of a dialect pack)")
	fs.String("dict", defaults.Tokenizer.DictPath, "Path to a dictionary TSV file (alias for --tokenizer-dict-path)")
	fs.Bool("tokenizer-inflect", defaults.Tokenizer.Inflect, "Insert affixed variants of dictionary forms")
	fs.Bool("tokenizer-split-affixes", defaults.Tokenizer.SplitAffixes, "Split affixed particles into their own tokens")
	fs.Bool("tokenizer-merge-dagdra", defaults.Tokenizer.MergeDagdra, "Merge dagdra particles into the preceding token")
	fs.Bool("tokenizer-fill-lemmas", defaults.Tokenizer.FillLemmas, "Fill empty lemmas from token text")
	fs.Bool("tokenizer-pick-senses", defaults.Tokenizer.PickSenses, "Order homonym senses by frequency")
	fs.Bool("tokenizer-spaces-as-punct", defaults.Tokenizer.SpacesAsPunct, "Treat whitespace as punctuation")
	fs.Bool("tokenizer-normalize", defaults.Tokenizer.Normalize, "Apply Unicode NFC before tokenizing")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent tokenization requests")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent tokenization requests (alias for --server-workers)")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Largest accepted request text in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("BOTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("packs.base_dir", "BOTOK_PACKS_DIR", "BOTOK_PACKS_BASE_DIR"); err != nil {
		return Config{}, fmt.Errorf("bind packs env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("botok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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
	v.SetDefault("packs.base_dir", c.Packs.BaseDir)
	v.SetDefault("packs.name", c.Packs.Name)
	v.SetDefault("tokenizer.dict_path", c.Tokenizer.DictPath)
	v.SetDefault("tokenizer.inflect", c.Tokenizer.Inflect)
	v.SetDefault("tokenizer.split_affixes", c.Tokenizer.SplitAffixes)
	v.SetDefault("tokenizer.merge_dagdra", c.Tokenizer.MergeDagdra)
	v.SetDefault("tokenizer.fill_lemmas", c.Tokenizer.FillLemmas)
	v.SetDefault("tokenizer.pick_senses", c.Tokenizer.PickSenses)
	v.SetDefault("tokenizer.spaces_as_punct", c.Tokenizer.SpacesAsPunct)
	v.SetDefault("tokenizer.normalize", c.Tokenizer.Normalize)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("packs.base_dir", "packs-base-dir")
	v.RegisterAlias("packs.name", "packs-name")
	v.RegisterAlias("packs.name", "pack")
	v.RegisterAlias("tokenizer.dict_path", "tokenizer-dict-path")
	v.RegisterAlias("tokenizer.dict_path", "dict")
	v.RegisterAlias("tokenizer.inflect", "tokenizer-inflect")
	v.RegisterAlias("tokenizer.split_affixes", "tokenizer-split-affixes")
	v.RegisterAlias("tokenizer.merge_dagdra", "tokenizer-merge-dagdra")
	v.RegisterAlias("tokenizer.fill_lemmas", "tokenizer-fill-lemmas")
	v.RegisterAlias("tokenizer.pick_senses", "tokenizer-pick-senses")
	v.RegisterAlias("tokenizer.spaces_as_punct", "tokenizer-spaces-as-punct")
	v.RegisterAlias("tokenizer.normalize", "tokenizer-normalize")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("server.workers", "workers")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("log_level", "log-level")
}
