package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file looked up when --config is not given.
const FileName = "castmerge"

// EnvPrefix prefixes every environment override, e.g. CASTMERGE_LOG_LEVEL.
const EnvPrefix = "CASTMERGE"

// invalidSheetChars cannot appear in an Excel sheet name.
const invalidSheetChars = "[]/?*:;{}"

type Config struct {
	App     AppConfig
	Log     LogConfig
	Import  ImportConfig
	Export  ExportConfig
	Columns ColumnsConfig
}

type AppConfig struct {
	MaxFileSizeMB int
}

type LogConfig struct {
	Level  string
	Format string
}

type ImportConfig struct {
	SizeChartFilename      string
	ProductDetailsFilename string
	OutputFilename         string
	ExcludeSheets          []string
}

type ExportConfig struct {
	OutputPrefix           string
	PreserveUnknownColumns bool
}

type ColumnsConfig struct {
	StyleID string
	Flag    string
}

// MaxFileSize returns the upload limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.App.MaxFileSizeMB) * 1024 * 1024
}

// SetDefaults registers every key with its default so that environment
// variables resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.max_file_size_mb", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("import.size_chart_filename", "sku.xlsx")
	v.SetDefault("import.product_details_filename", "style.xlsx")
	v.SetDefault("import.output_filename", "Batch_Merged_With_Types_Values.xlsx")
	v.SetDefault("import.exclude_sheets", []string{"masterdata"})
	v.SetDefault("export.output_prefix", "Formatted_")
	v.SetDefault("export.preserve_unknown_columns", false)
	v.SetDefault("columns.style_id", "styleId")
	v.SetDefault("columns.flag", "AI Generated Image Flag")
}

// Load reads .env, the config file and CASTMERGE_* variables into v and
// returns the validated settings. Flags already bound to v take precedence.
// A missing default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := decode(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in settings without consulting files or env.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	return decode(v)
}

func decode(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			MaxFileSizeMB: v.GetInt("app.max_file_size_mb"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Import: ImportConfig{
			SizeChartFilename:      v.GetString("import.size_chart_filename"),
			ProductDetailsFilename: v.GetString("import.product_details_filename"),
			OutputFilename:         v.GetString("import.output_filename"),
			ExcludeSheets:          ParseSheetList(v.GetStringSlice("import.exclude_sheets")),
		},
		Export: ExportConfig{
			OutputPrefix:           v.GetString("export.output_prefix"),
			PreserveUnknownColumns: v.GetBool("export.preserve_unknown_columns"),
		},
		Columns: ColumnsConfig{
			StyleID: v.GetString("columns.style_id"),
			Flag:    v.GetString("columns.flag"),
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.App.MaxFileSizeMB <= 0 {
		return fmt.Errorf("app.max_file_size_mb must be positive, got %d", c.App.MaxFileSizeMB)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q, expected text or json", c.Log.Format)
	}
	if err := ValidateSheetNames(c.Import.ExcludeSheets); err != nil {
		return err
	}
	if c.Columns.StyleID == "" || c.Columns.Flag == "" {
		return fmt.Errorf("columns.style_id and columns.flag must not be empty")
	}
	return nil
}

// ParseSheetList splits comma-separated entries and trims each name. Env
// variables arrive as one comma-separated string; config files as a list.
func ParseSheetList(entries []string) []string {
	out := []string{}
	for _, e := range entries {
		for _, name := range strings.Split(e, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// ValidateSheetNames rejects names Excel would refuse as sheet names.
func ValidateSheetNames(names []string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("exclude sheet names must not be empty")
		}
		if strings.ContainsAny(name, invalidSheetChars) {
			return fmt.Errorf("invalid sheet name %q: must not contain any of %s", name, invalidSheetChars)
		}
	}
	return nil
}
