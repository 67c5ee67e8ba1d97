// Package config loads the launcher settings from .noderunner.yaml and
// NODERUNNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harshul/noderunner/internal/launcher"
	"github.com/harshul/noderunner/internal/ports"
)

// FileName is the config file looked up in the working directory.
const FileName = ".noderunner.yaml"

// EnvPrefix prefixes environment overrides, e.g. NODERUNNER_PORTS_DEBUG_BASE.
const EnvPrefix = "NODERUNNER"

type Config struct {
	// JavaHome selects the JDK; empty means $JAVA_HOME, then PATH
	JavaHome string   `mapstructure:"java_home" yaml:"java_home,omitempty"`
	JVMArgs  []string `mapstructure:"jvm_args" yaml:"jvm_args,omitempty"`

	Ports Ports `mapstructure:"ports" yaml:"ports"`

	DriversDir   string `mapstructure:"drivers_dir" yaml:"drivers_dir"`
	AgentPattern string `mapstructure:"agent_pattern" yaml:"agent_pattern"`
	// MonitoringRequired makes a missing monitoring agent fail the launch
	MonitoringRequired bool `mapstructure:"monitoring_required" yaml:"monitoring_required"`

	Terminal    string        `mapstructure:"terminal" yaml:"terminal"`
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`

	// RecordFile, when set, receives a YAML record of each run
	RecordFile string `mapstructure:"record_file" yaml:"record_file,omitempty"`

	Log Log `mapstructure:"log" yaml:"log"`
}

type Ports struct {
	DebugBase      int `mapstructure:"debug_base" yaml:"debug_base"`
	MonitoringBase int `mapstructure:"monitoring_base" yaml:"monitoring_base"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Output is "stderr", "stdout" or a directory for a rotating log file
	Output string `mapstructure:"output" yaml:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Ports: Ports{
			DebugBase:      ports.DefaultDebugBase,
			MonitoringBase: ports.DefaultMonitoringBase,
		},
		DriversDir:         launcher.DefaultDriversDir,
		AgentPattern:       launcher.DefaultAgentPattern,
		MonitoringRequired: true,
		Terminal:           launcher.DefaultTerminal,
		SettleDelay:        launcher.DefaultSettleDelay,
		Log: Log{
			Level:  "info",
			Output: "stderr",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("java_home", d.JavaHome)
	// jvm_args is bound without a default so an unset value stays nil.
	_ = v.BindEnv("jvm_args")
	v.SetDefault("ports.debug_base", d.Ports.DebugBase)
	v.SetDefault("ports.monitoring_base", d.Ports.MonitoringBase)
	v.SetDefault("drivers_dir", d.DriversDir)
	v.SetDefault("agent_pattern", d.AgentPattern)
	v.SetDefault("monitoring_required", d.MonitoringRequired)
	v.SetDefault("terminal", d.Terminal)
	v.SetDefault("settle_delay", d.SettleDelay)
	v.SetDefault("record_file", d.RecordFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.output", d.Log.Output)
}

// Load reads the config file at path if it exists and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("error reading config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Write writes cfg as a YAML file.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
