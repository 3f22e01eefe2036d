package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	version    = "0.1.0"
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "mktimg",
	Short: "Listing image pipeline for the marketplace front-end",
	Long: `mktimg — shrinks uploaded product photos before they reach the store.

Resizes to a maximum width without upscaling, flattens transparency onto
white, re-encodes in the source format at a chosen quality, and turns
any file into a base64 data URL for inline thumbnails.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./mktimg.toml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"mktimg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	viper.SetDefault("compress.max_width", 1920)
	viper.SetDefault("compress.quality", 0.8)
	viper.SetDefault("compress.strict", false)
	viper.SetDefault("product.preset", "listing")
	viper.SetDefault("product.thumb_preset", "thumbnail")
	viper.SetDefault("product.out", "./mktimg_out")
	viper.SetDefault("log.level", "info")
}

// setup loads configuration and configures the global logger.
func setup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	level := zerolog.InfoLevel
	switch viper.GetString("log.level") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if f := viper.ConfigFileUsed(); f != "" {
		log.Debug().Str("file", f).Msg("loaded config")
	}
	return nil
}

func loadConfig() error {
	viper.SetEnvPrefix("MKTIMG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("mktimg")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/mktimg")
		}
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !(configFile == "" && errors.As(err, &notFound)) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Flag values win over config when set explicitly.

func intSetting(flags *pflag.FlagSet, name, key string) int {
	if f := flags.Lookup(name); f != nil && f.Changed {
		v, _ := flags.GetInt(name)
		return v
	}
	return viper.GetInt(key)
}

func floatSetting(flags *pflag.FlagSet, name, key string) float64 {
	if f := flags.Lookup(name); f != nil && f.Changed {
		v, _ := flags.GetFloat64(name)
		return v
	}
	return viper.GetFloat64(key)
}

func boolSetting(flags *pflag.FlagSet, name, key string) bool {
	if f := flags.Lookup(name); f != nil && f.Changed {
		v, _ := flags.GetBool(name)
		return v
	}
	return viper.GetBool(key)
}

func stringSetting(flags *pflag.FlagSet, name, key string) string {
	if f := flags.Lookup(name); f != nil && f.Changed {
		v, _ := flags.GetString(name)
		return v
	}
	return viper.GetString(key)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
