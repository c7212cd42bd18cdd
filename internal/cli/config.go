package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/boxsdk/internal/paths"
	"github.com/mesh-intelligence/boxsdk/pkg/box"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "BOXCTL"

	cfgKeyAPIURL      = "api_url"
	cfgKeyToken       = "token"
	cfgKeyTimeout     = "timeout"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
	cfgKeySandboxAddr = "sandbox_addr"
	cfgKeyDataDir     = "data_dir"

	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
	defaultSandboxAddr = "127.0.0.1:8787"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	APIURL      string `yaml:"api_url"`
	Token       string `yaml:"token"`
	Timeout     string `yaml:"timeout"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	SandboxAddr string `yaml:"sandbox_addr"`
	DataDir     string `yaml:"data_dir,omitempty"`
}

func defaultConfigFile() configFile {
	return configFile{
		APIURL:      types.DefaultAPIURL,
		Timeout:     types.DefaultTimeout.String(),
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		SandboxAddr: defaultSandboxAddr,
	}
}

// loadConfig reads config.yaml from configDir with defaults and BOXCTL_
// environment overrides. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyAPIURL, types.DefaultAPIURL)
	v.SetDefault(cfgKeyTimeout, types.DefaultTimeout)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeySandboxAddr, defaultSandboxAddr)
	v.SetDefault(cfgKeyToken, "")
	v.SetDefault(cfgKeyDataDir, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// clientConfig maps loaded settings onto a client Config.
func clientConfig(v *viper.Viper) types.Config {
	return types.Config{
		APIURL:    v.GetString(cfgKeyAPIURL),
		Token:     v.GetString(cfgKeyToken),
		Timeout:   v.GetDuration(cfgKeyTimeout),
		UserAgent: "boxctl/" + box.Version,
	}
}

// writeConfigIfMissing creates config.yaml with default values if it does
// not exist. It reports whether a file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := "# boxctl configuration. Every key can be overridden with " + envPrefix + "_<KEY>.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return false, err
	}
	return true, nil
}

// configPath returns the config.yaml path inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, paths.ConfigFileName)
}
