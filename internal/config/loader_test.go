package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/perfdash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PERFDASH_PAGE_SIZE", "25")
			_ = os.Setenv("PERFDASH_LOG_LEVEL", "debug")
			_ = os.Setenv("PERFDASH_SCORE_ERROR_WEIGHT", "0.2")
			_ = os.Setenv("PERFDASH_METRICS_FILE", "/tmp/perfdash.prom")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PageSize, convey.ShouldEqual, 25)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ScoreErrorWeight, convey.ShouldEqual, 0.2)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/perfdash.prom")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard settings
page_size: 20
ingest_concurrency: 2
score_max_quality: 5  # five-point scale
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PERFDASH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PageSize, convey.ShouldEqual, 20)
				convey.So(cfg.IngestConcurrency, convey.ShouldEqual, 2)
				convey.So(cfg.ScoreMaxQuality, convey.ShouldEqual, 5)
				convey.So(cfg.ScoreBaseWeight, convey.ShouldEqual, 0.4) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("page_size: 20\ningest_concurrency: 2\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PERFDASH_PAGE_SIZE", "30") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PageSize, convey.ShouldEqual, 30)         // Overridden by env
				convey.So(cfg.IngestConcurrency, convey.ShouldEqual, 2) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PERFDASH_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PERFDASH_PAGE_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero page size", func() {
			_ = os.Setenv("PERFDASH_PAGE_SIZE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "page_size")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PERFDASH_CONFIG",
		"PERFDASH_LOG_LEVEL",
		"PERFDASH_PAGE_SIZE",
		"PERFDASH_INGEST_CONCURRENCY",
		"PERFDASH_SCORE_BASE_WEIGHT",
		"PERFDASH_SCORE_QUALITY_WEIGHT",
		"PERFDASH_SCORE_ERROR_WEIGHT",
		"PERFDASH_SCORE_MAX_QUALITY",
		"PERFDASH_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "perfdash-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
