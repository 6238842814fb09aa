package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ringsizer/storefront/internal/config"
)

var level = zap.NewAtomicLevel()

// Init replaces zap's global logger: JSON in production, colored console otherwise.
func Init(env, lvl string) error {
	var conf zap.Config
	if env == config.EnvProduction {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if err := SetLevel(lvl); err != nil {
		return err
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build() -> %w", err)
	}
	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime. An empty level keeps the current one.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel(%v) -> %w", lvl, err)
	}
	level.SetLevel(parsed)
	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
