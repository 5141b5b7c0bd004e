package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gubarz/blockaudit/internal/analyzer"
)

// Config holds the application configuration
type Config struct {
	Document         string   `mapstructure:"document"`
	Language         string   `mapstructure:"language"`
	MaxBlockLines    int      `mapstructure:"max_block_lines"`
	MaxFunctionLines int      `mapstructure:"max_function_lines"`
	DocstringWindow  int      `mapstructure:"docstring_window"`
	MinCommentRatio  float64  `mapstructure:"min_comment_ratio"`
	MinCommentLines  int      `mapstructure:"min_comment_lines"`
	UndefinedMethods []string `mapstructure:"undefined_methods"`
	RequiredImports  []string `mapstructure:"required_imports"`
	LineLimit        int      `mapstructure:"line_limit"`
	Format           string   `mapstructure:"format"`
	Output           string   `mapstructure:"output"`
	OutFile          string   `mapstructure:"out_file"`
	Color            bool     `mapstructure:"color"`
	ColorHigh        string   `mapstructure:"color_high"`
	ColorMedium      string   `mapstructure:"color_medium"`
	ColorLow         string   `mapstructure:"color_low"`
	ColorHeader      string   `mapstructure:"color_header"`
	ColorDim         string   `mapstructure:"color_dim"`
	ColorSelected    string   `mapstructure:"color_selected"`
}

// C is the global config instance
var C Config

// SetDefaults registers every default value
func SetDefaults() {
	defaults := analyzer.DefaultOptions()

	viper.SetDefault("document", "input/document.md")
	viper.SetDefault("language", defaults.Language)
	viper.SetDefault("max_block_lines", defaults.MaxBlockLines)
	viper.SetDefault("max_function_lines", defaults.MaxFunctionLines)
	viper.SetDefault("docstring_window", defaults.DocstringWindow)
	viper.SetDefault("min_comment_ratio", defaults.MinCommentRatio)
	viper.SetDefault("min_comment_lines", defaults.MinCommentLines)
	viper.SetDefault("undefined_methods", defaults.UndefinedMethods)
	viper.SetDefault("required_imports", defaults.RequiredImports)
	viper.SetDefault("line_limit", 75)
	viper.SetDefault("format", "text")
	viper.SetDefault("output", "print")
	viper.SetDefault("out_file", "")
	viper.SetDefault("color", true)
	viper.SetDefault("color_high", "31")      // Red
	viper.SetDefault("color_medium", "33")    // Yellow
	viper.SetDefault("color_low", "32")       // Green
	viper.SetDefault("color_header", "36")    // Cyan
	viper.SetDefault("color_dim", "241")      // Gray
	viper.SetDefault("color_selected", "236") // Dark background
}

// Init initializes configuration with viper
func Init() error {
	SetDefaults()

	viper.SetConfigName("blockaudit")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "blockaudit"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BLOCKAUDIT")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// Reload refreshes C after flags or runtime overrides changed viper
func Reload() error {
	return viper.Unmarshal(&C)
}

// ConfigFile returns the config file in use, if any
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// GetDocument returns the audited document path with tilde expansion
func GetDocument() string {
	return expandTilde(viper.GetString("document"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLanguage returns the audited language tag
func GetLanguage() string {
	return viper.GetString("language")
}

// GetLineLimit returns the line length limit for the line-length checker
func GetLineLimit() int {
	return viper.GetInt("line_limit")
}

// GetFormat returns the report format
func GetFormat() string {
	return viper.GetString("format")
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetOutFile returns the report file for the file output mode
func GetOutFile() string {
	return expandTilde(viper.GetString("out_file"))
}

// GetColor returns whether the text report is coloured
func GetColor() bool {
	return viper.GetBool("color")
}

// GetColorHigh returns ANSI color code for high severity
func GetColorHigh() string {
	return viper.GetString("color_high")
}

// GetColorMedium returns ANSI color code for medium severity
func GetColorMedium() string {
	return viper.GetString("color_medium")
}

// GetColorLow returns ANSI color code for low severity
func GetColorLow() string {
	return viper.GetString("color_low")
}

// GetColorHeader returns ANSI color code for headings
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorDim returns the color for secondary text in the browser
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorSelected returns the background color of the selected row
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// AnalyzerOptions maps the configuration onto analyzer options
func AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		Language:         viper.GetString("language"),
		MaxBlockLines:    viper.GetInt("max_block_lines"),
		MaxFunctionLines: viper.GetInt("max_function_lines"),
		DocstringWindow:  viper.GetInt("docstring_window"),
		MinCommentRatio:  viper.GetFloat64("min_comment_ratio"),
		MinCommentLines:  viper.GetInt("min_comment_lines"),
		UndefinedMethods: viper.GetStringSlice("undefined_methods"),
		RequiredImports:  viper.GetStringSlice("required_imports"),
	}
}

// SetDocument sets the document path at runtime
func SetDocument(path string) {
	viper.Set("document", path)
	C.Document = path
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetColor enables or disables colour at runtime
func SetColor(enabled bool) {
	viper.Set("color", enabled)
	C.Color = enabled
}
