// Package config loads mspreport settings from defaults, an optional YAML
// file, MSPREPORT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// MSPREPORT_REPORT_PERIOD_DAYS.
const EnvPrefix = "MSPREPORT"

// Config holds all settings for one run.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Report ReportConfig `mapstructure:"report"`
	Excel  ExcelConfig  `mapstructure:"excel"`
}

// LogConfig controls the run log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ReportConfig holds bucketing defaults.
type ReportConfig struct {
	PeriodDays     int      `mapstructure:"period_days"`
	PeriodCount    int      `mapstructure:"period_count"`
	IncompleteOnly bool     `mapstructure:"incomplete_only"`
	WIPColumn      bool     `mapstructure:"wip_column"`
	Fields         []string `mapstructure:"fields"`
	IgnoreIDs      []int    `mapstructure:"ignore_ids"`
	OutputDir      string   `mapstructure:"output_dir"`
}

// ExcelConfig holds the cosmetic workbook settings.
type ExcelConfig struct {
	DateFormat     string   `mapstructure:"date_format"`
	Zoom           float64  `mapstructure:"zoom"`
	SmallWidth     float64  `mapstructure:"small_width"`
	MediumWidth    float64  `mapstructure:"medium_width"`
	LargeWidth     float64  `mapstructure:"large_width"`
	WrapSmall      []string `mapstructure:"wrap_small"`
	WrapMedium     []string `mapstructure:"wrap_medium"`
	WrapLarge      []string `mapstructure:"wrap_large"`
	DateColumns    []string `mapstructure:"date_columns"`
	AutofitColumns []string `mapstructure:"autofit_columns"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      "INFO",
			Dir:        "log",
			MaxSizeMB:  1,
			MaxBackups: 5,
		},
		Report: ReportConfig{
			PeriodDays:     7,
			PeriodCount:    5,
			IncompleteOnly: true,
			WIPColumn:      true,
			OutputDir:      ".",
		},
		Excel: ExcelConfig{
			DateFormat:     "dd/mm/yyyy",
			Zoom:           60,
			SmallWidth:     30,
			MediumWidth:    50,
			LargeWidth:     80,
			WrapSmall:      []string{"Resource Names", "Predecessors"},
			WrapMedium:     []string{"SummaryTask", "Name"},
			WrapLarge:      []string{"Notes"},
			DateColumns:    []string{"Start", "Finish", "Deadline", "Actual Start", "Actual Finish", "Baseline Start", "Baseline Finish"},
			AutofitColumns: []string{"UniqueID", "% Complete", "WIP"},
		},
	}
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"log-level":   "log.level",
	"log-dir":     "log.dir",
	"period-days": "report.period_days",
	"periods":     "report.period_count",
	"fields":      "report.fields",
	"ignore":      "report.ignore_ids",
	"out-dir":     "report.output_dir",
}

// Load builds a Config. path names an explicit config file; when empty the
// file mspreport.yaml is searched in ./config, . and $HOME/.mspreport and may
// be absent. flags may be nil; flags that were set on the command line win
// over every other source.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mspreport")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".mspreport"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := FlagKeys[f.Name]
		if !ok || !f.Changed || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("binding flag --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)

	v.SetDefault("report.period_days", d.Report.PeriodDays)
	v.SetDefault("report.period_count", d.Report.PeriodCount)
	v.SetDefault("report.incomplete_only", d.Report.IncompleteOnly)
	v.SetDefault("report.wip_column", d.Report.WIPColumn)
	v.SetDefault("report.fields", d.Report.Fields)
	v.SetDefault("report.ignore_ids", d.Report.IgnoreIDs)
	v.SetDefault("report.output_dir", d.Report.OutputDir)

	v.SetDefault("excel.date_format", d.Excel.DateFormat)
	v.SetDefault("excel.zoom", d.Excel.Zoom)
	v.SetDefault("excel.small_width", d.Excel.SmallWidth)
	v.SetDefault("excel.medium_width", d.Excel.MediumWidth)
	v.SetDefault("excel.large_width", d.Excel.LargeWidth)
	v.SetDefault("excel.wrap_small", d.Excel.WrapSmall)
	v.SetDefault("excel.wrap_medium", d.Excel.WrapMedium)
	v.SetDefault("excel.wrap_large", d.Excel.WrapLarge)
	v.SetDefault("excel.date_columns", d.Excel.DateColumns)
	v.SetDefault("excel.autofit_columns", d.Excel.AutofitColumns)
}

var validLevels = map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if !validLevels[strings.ToUpper(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level: invalid value %q (DEBUG, INFO, WARN or ERROR)", c.Log.Level))
	}
	if c.Log.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb must be positive"))
	}
	if c.Report.PeriodDays < 1 {
		errs = append(errs, fmt.Errorf("report.period_days must be at least 1"))
	}
	if c.Report.PeriodCount < 1 {
		errs = append(errs, fmt.Errorf("report.period_count must be at least 1"))
	}
	if c.Excel.Zoom < 10 || c.Excel.Zoom > 400 {
		errs = append(errs, fmt.Errorf("excel.zoom must be between 10 and 400"))
	}
	return errors.Join(errs...)
}
