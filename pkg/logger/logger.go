package logger

import (
	"os"

	"maitri-medico/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the zap logger from config and installs it as the global logger.
// With a log file configured, JSON lines go to a rotating file and console output to stdout.
func Init(cfg config.LoggerConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotating),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, err
		}
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
