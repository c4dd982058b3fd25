package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/badgekit"
)

// loadDotEnv loads .env files into the environment. A missing file is
// normal; a file that cannot be parsed is logged and skipped.
func loadDotEnv(log logrus.FieldLogger, paths ...string) {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("ignoring unreadable .env file")
	}
}

// envConfig holds the BADGEKIT_* settings.
type envConfig struct {
	font        string
	maxImageDim int // -1 when unset
	logLevel    logrus.Level
}

func loadEnv() (envConfig, error) {
	cfg := envConfig{
		font:        os.Getenv("BADGEKIT_FONT"),
		maxImageDim: -1,
		logLevel:    logrus.InfoLevel,
	}
	if v := os.Getenv("BADGEKIT_MAX_IMAGE_DIM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("BADGEKIT_MAX_IMAGE_DIM: %q is not a non-negative integer", v)
		}
		cfg.maxImageDim = n
	}
	if v := os.Getenv("BADGEKIT_LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("BADGEKIT_LOG_LEVEL: %w", err)
		}
		cfg.logLevel = lvl
	}
	return cfg, nil
}

func (c envConfig) options() []badgekit.Option {
	var opts []badgekit.Option
	if c.font != "" {
		opts = append(opts, badgekit.WithFontFamily(c.font))
	}
	if c.maxImageDim >= 0 {
		opts = append(opts, badgekit.WithMaxImageDimension(c.maxImageDim))
	}
	return opts
}
