package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	dogescan "github.com/dogeorg/dogescan/pkg"
	"github.com/dogeorg/dogescan/pkg/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dogescand",
	Short: "dogescand surveys nearby WiFi networks and serves a live dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(config)
		Server(config).Start()
		return nil
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := version.GetRelease()
		fmt.Printf("Release: %s\n", v.Release)
		fmt.Printf("Git: %s\n", v.Git.Commit)
		fmt.Printf("Dirty: %t\n", v.Git.Dirty)
	},
}

func init() {
	addServerFlags(rootCmd.Flags())
	rootCmd.AddCommand(versionCmd)
}

func addServerFlags(f *pflag.FlagSet) {
	f.StringVar(&cfgFile, "config", "", "config file (default dogescand.yaml in ., /etc/dogescan or ~/.config/dogescan)")
	f.Int("port", 8080, "REST API Port")
	f.String("addr", "127.0.0.1", "Address to bind to")
	f.String("data-dir", "/var/lib/dogescan", "Directory for persisted settings")
	f.String("iface", "", "Wireless interface to scan (default: first station interface)")
	f.String("radio", dogescan.RadioIWList, "Radio backend: iwlist or demo")
	f.Duration("scan-interval", dogescan.DefaultScanInterval, "Auto scan interval")
	f.Bool("autoscan", false, "Start with the scan timer armed")
	f.String("led", "", "sysfs attribute driving the status LED")
	f.String("button", "", "sysfs value file of the manual scan button")
	f.String("ui-dir", "", "Serve the dashboard from this directory instead of the built-in page")
	f.BoolP("verbose", "v", false, "Be verbose")
	f.Bool("log-json", false, "Log as JSON")
}

func loadConfig(cmd *cobra.Command) (dogescan.ServerConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("dogescand")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dogescan")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dogescan"))
		}
	}
	v.SetEnvPrefix("DOGESCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return dogescan.ServerConfig{}, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return dogescan.ServerConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	config := dogescan.ServerConfig{
		DataDir:      v.GetString("data-dir"),
		Bind:         v.GetString("addr"),
		Port:         v.GetInt("port"),
		Interface:    v.GetString("iface"),
		Radio:        v.GetString("radio"),
		ScanInterval: v.GetDuration("scan-interval"),
		AutoScan:     v.GetBool("autoscan"),
		LEDPath:      v.GetString("led"),
		ButtonPath:   v.GetString("button"),
		UiDir:        v.GetString("ui-dir"),
		Verbose:      v.GetBool("verbose"),
		LogJSON:      v.GetBool("log-json"),
	}

	return config, config.Validate()
}

func setupLogging(config dogescan.ServerConfig) {
	if config.LogJSON {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	if config.Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
