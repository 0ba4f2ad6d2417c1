package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"checkgen.dev/pkg/checkgen/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "checkgen"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	checkPrefixFlagName     = "check-prefix"
	sourceDelimFlagName     = "source-delim-regex"
	startsFromScopeFlagName = "starts-from-scope"
	variableNamesFlagName   = "variable-names"
	attributeNamesFlagName  = "attribute-names"
	batchSuffixFlagName     = "suffix"
	batchParallelFlagName   = "parallel"
	logFileFlagName         = "log-file"
	verboseFlagName         = "verbose"

	checkPrefixKey     = "check.prefix"
	sourceDelimKey     = "source.delim_regex"
	startsFromScopeKey = "scope.starts_from"
	variableNamesKey   = "names.variables"
	attributeNamesKey  = "names.attributes"
	batchSuffixKey     = "batch.suffix"
	batchParallelKey   = "batch.parallel"

	defaultBatchSuffix   = ".checks"
	defaultBatchParallel = 1

	envPrefix = "CHECKGEN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".checkgen.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(checkPrefixKey, domain.DefaultCheckPrefix)
	viper.SetDefault(sourceDelimKey, domain.DefaultSourceDelimRegex)
	viper.SetDefault(startsFromScopeKey, domain.DefaultStartsFromScope)
	viper.SetDefault(variableNamesKey, "")
	viper.SetDefault(attributeNamesKey, "")
	viper.SetDefault(batchSuffixKey, defaultBatchSuffix)
	viper.SetDefault(batchParallelKey, defaultBatchParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	loadConfig()
}

// loadConfig reads checkgen.yaml if present. A missing file is normal; any
// other failure is logged and the defaults stay in effect.
func loadConfig() {
	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return
	}

	slog.Warn("ignoring unreadable config file", "file", viper.ConfigFileUsed(), "error", err)
}

// engineOptions collects the conversion settings from flags, environment and
// config file.
func engineOptions() domain.Options {
	return domain.Options{
		CheckPrefix:      viper.GetString(checkPrefixKey),
		SourceDelimRegex: viper.GetString(sourceDelimKey),
		StartsFromScope:  viper.GetInt(startsFromScopeKey),
		VariableNames:    viper.GetString(variableNamesKey),
		AttributeNames:   viper.GetString(attributeNamesKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug. Naming
// decisions of the engine are only visible at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
