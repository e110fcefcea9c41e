package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/natsuyasai/api-tester-sub003/pkg/notify"
	"github.com/natsuyasai/api-tester-sub003/pkg/request"
	"github.com/natsuyasai/api-tester-sub003/pkg/storage"
)

const appDirName = ".apitester"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "apitester",
		Short: "Compose, inspect, and share API requests from the terminal",
		Long: `apitester works with the same YAML request definitions as the desktop app:
it validates them, substitutes environment variables, and renders requests
(and captured responses) as raw HTTP text for inspection or sharing.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
			}
			return storage.EnsureLayout(baseDir())
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .apitester/config.yaml)")
	rootCmd.AddCommand(renderCmd, checkCmd, listCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(appDirName)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("base_dir", appDirName)
	viper.SetDefault("auto_close.success", int(notify.DefaultSuccessAutoClose.Milliseconds()))
	viper.SetDefault("auto_close.info", int(notify.DefaultInfoAutoClose.Milliseconds()))
	viper.SetDefault("auto_close.warning", int(notify.DefaultWarningAutoClose.Milliseconds()))
	viper.SetDefault("auto_close.error", int(notify.DefaultErrorAutoClose.Milliseconds()))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func baseDir() string {
	return viper.GetString("base_dir")
}

// autoCloseFor returns the configured auto-close duration for a notification
// type, in milliseconds under the auto_close.* keys. Zero or negative values
// disable auto-close.
func autoCloseFor(typ notify.Type) time.Duration {
	ms := viper.GetInt("auto_close." + string(typ))
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// loadRequestFile loads a request either from an explicit path or, when no
// such file exists, by name from the requests directory.
func loadRequestFile(arg string) (*request.Request, error) {
	if _, err := os.Stat(arg); err == nil {
		return storage.LoadRequest(arg)
	}

	name := arg
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name = strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".yaml"
	}
	return storage.LoadRequest(filepath.Join(storage.RequestsDir(baseDir()), name))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
