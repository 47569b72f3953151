package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "statekey"

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"limits.max_sequence_len": "max-seq-len",
	"transform.name":          "transform",
	"transform.zstd_level":    "zstd-level",
	"log.level":               "log-level",
	"log.format":              "log-format",
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     core.Config
	log     *logrus.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:   viper.New(),
		log: logrus.New(),
	}
	def := core.DefaultConfig()

	root := &cobra.Command{
		Use:           "statekey",
		Short:         "statekey builds, encodes and inspects global state keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.Uint32("max-seq-len", def.Limits.MaxSequenceLen, "maximum number of keys in a decoded sequence (0 bounds by input size only)")
	flags.String("transform", def.Transform.Name, "sequence envelope transform: none or zstd")
	flags.Int("zstd-level", def.Transform.ZstdLevel, "zstd compression level")
	flags.String("log-level", def.Log.Level, "log level")
	flags.String("log-format", def.Log.Format, "log format: text or json")
	bindFlags(a.v, flags)

	root.AddCommand(
		a.newHashCmd(),
		a.newURefCmd(),
		a.newLocalCmd(),
		a.newDecodeCmd(),
		a.newEncodeCmd(),
		a.newCIDCmd(),
		a.newFromCIDCmd(),
	)
	return root
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for k, name := range flagBindings {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(k, f)
		}
	}
}

// loadConfig layers defaults, the config file, STATEKEY_* environment variables and
// flags, then configures the logger.
func (a *app) loadConfig(cmd *cobra.Command) error {
	def := core.DefaultConfig()
	a.v.SetDefault("limits.max_sequence_len", def.Limits.MaxSequenceLen)
	a.v.SetDefault("transform.name", def.Transform.Name)
	a.v.SetDefault("transform.zstd_level", def.Transform.ZstdLevel)
	a.v.SetDefault("log.level", def.Log.Level)
	a.v.SetDefault("log.format", def.Log.Format)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", a.cfgFile, err)
		}
	}

	a.cfg = core.Config{
		Limits: core.LimitsConfig{
			MaxSequenceLen: a.v.GetUint32("limits.max_sequence_len"),
		},
		Transform: core.TransformConfig{
			Name:      a.v.GetString("transform.name"),
			ZstdLevel: a.v.GetInt("transform.zstd_level"),
		},
		Log: core.LogConfig{
			Level:  a.v.GetString("log.level"),
			Format: a.v.GetString("log.format"),
		},
	}

	if err := setupLogger(a.log, a.cfg.Log, cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"config":    a.v.ConfigFileUsed(),
		"transform": a.cfg.Transform.Name,
		"max_seq":   a.cfg.Limits.MaxSequenceLen,
	}).Debug("configuration loaded")
	return nil
}

func setupLogger(l *logrus.Logger, cfg core.LogConfig, w io.Writer) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("%w: unknown log format %q", core.ErrInvalidInput, cfg.Format)
	}

	l.SetOutput(w)
	l.SetLevel(level)
	return nil
}
