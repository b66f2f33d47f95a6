package app

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"
)

// config file stuff
var (
	configFileName = "config"
	configFileExt  = ".yml"
	configType     = "yaml"
	appName        = "gitmock"

	configurationDirectory = filepath.Join(osConfigDirectory(runtime.GOOS), appName)
	configFileAbsPath      = filepath.Join(configurationDirectory, configFileName)
)

// configuration items
var (
	fixturesKey             = "fixtures"
	fixturesKeyDefault      = ""
	caseSensitiveKey        = "case-sensitive"
	caseSensitiveKeyDefault = false
	debugKey                = "debug"
	debugKeyDefault         = false
)

// Configuration cache to avoid repeated loading
var (
	cachedConfig *Config
	configMutex  sync.RWMutex
	configOnce   sync.Once
)

// loadConfiguration returns a Config struct with caching support
func loadConfiguration() (*Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return cachedConfig, nil
	}
	configMutex.RUnlock()

	var err error
	configOnce.Do(func() {
		err = loadConfigurationOnce()
	})

	if err != nil {
		return nil, err
	}

	configMutex.RLock()
	defer configMutex.RUnlock()
	return cachedConfig, nil
}

// loadConfigurationOnce performs the actual configuration loading
func loadConfigurationOnce() error {
	initializeConfigurationManager()
	setDefaults()
	if err := readConfiguration(); err != nil {
		return err
	}

	config := &Config{
		FixturesDir:   viper.GetString(fixturesKey),
		CaseSensitive: viper.GetBool(caseSensitiveKey),
		Debug:         viper.GetBool(debugKey),
	}

	configMutex.Lock()
	cachedConfig = config
	configMutex.Unlock()

	return nil
}

// set default configuration parameters
func setDefaults() {
	viper.SetDefault(fixturesKey, fixturesKeyDefault)
	viper.SetDefault(caseSensitiveKey, caseSensitiveKeyDefault)
	viper.SetDefault(debugKey, debugKeyDefault)
}

// read configuration from file, creating it with defaults on first run
func readConfiguration() error {
	err := viper.ReadInConfig()
	if err != nil {
		configFile := configFileAbsPath + configFileExt
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			if err = os.MkdirAll(configurationDirectory, 0755); err != nil {
				return err
			}

			f, err := os.Create(configFile)
			if err != nil {
				return err
			}
			f.Close()

			if err := viper.WriteConfig(); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// initialize the configuration manager
func initializeConfigurationManager() {
	viper.AddConfigPath(configurationDirectory)
	viper.SetConfigName(configFileName)
	viper.SetConfigType(configType)
}

// returns OS dependent config directory
func osConfigDirectory(osName string) (osConfigDirectory string) {
	switch osName {
	case "windows":
		osConfigDirectory = os.Getenv("APPDATA")
	case "darwin":
		osConfigDirectory = os.Getenv("HOME") + "/Library/Application Support"
	case "linux":
		osConfigDirectory = os.Getenv("HOME") + "/.config"
	}
	return osConfigDirectory
}
