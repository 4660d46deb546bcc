package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/craftboard/signcast/internal/model"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/signcast/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Signcast - Shop Display Renderer\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runDisplay(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SIGNCAST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("ndi-name", defaultNDIName)
	v.SetDefault("frame-rate", defaultFrameRate)
	v.SetDefault("display-width", defaultDisplayWidth)
	v.SetDefault("display-height", defaultDisplayHeight)
	v.SetDefault("transition", defaultTransition)
	v.SetDefault("transition-time", defaultTransitionTime)
	v.SetDefault("stale-threshold", defaultStaleThreshold)
	v.SetDefault("stale-position", defaultStalePosition)
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-port", defaultAPIPort)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultConfigPath := filepath.Join(home, ".config", "signcast", "config.yml")
		v.SetConfigFile(defaultConfigPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.FrameRate < model.MinFrameRate || cfg.FrameRate > model.MaxFrameRate {
		return cfg, fmt.Errorf("invalid frame-rate: %d (must be %d-%d)",
			cfg.FrameRate, model.MinFrameRate, model.MaxFrameRate)
	}
	if cfg.DisplayWidth <= 0 || cfg.DisplayHeight <= 0 {
		return cfg, fmt.Errorf("invalid display size: %dx%d", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if !model.TransitionKind(cfg.Transition).Valid() {
		return cfg, fmt.Errorf("invalid transition: %q", cfg.Transition)
	}
	switch cfg.StalePosition {
	case "top-left", "top-right", "bottom-left", "bottom-right":
	default:
		return cfg, fmt.Errorf("invalid stale-position: %q", cfg.StalePosition)
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}

	// Expand ~ in paths
	for _, p := range []*string{&cfg.DBPath, &cfg.DeckPath} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}

	if cfg.Host == "" {
		cfg.Host = defaultBindHost
	}
	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}
