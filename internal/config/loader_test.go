package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/prospect/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Model, convey.ShouldEqual, "v2")
				convey.So(cfg.MOICTargets, convey.ShouldResemble, []float64{10, 8, 6, 4, 2})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PROSPECT_ADDR", ":8080")
			_ = os.Setenv("PROSPECT_MODEL", "v4")
			_ = os.Setenv("PROSPECT_MAX_BATCH_SIZE", "25")
			_ = os.Setenv("PROSPECT_WORKER_COUNT", "3")
			_ = os.Setenv("PROSPECT_QUEUE_SIZE", "")
			_ = os.Setenv("PROSPECT_MOIC_TARGETS", "12, 6,3")
			_ = os.Setenv("PROSPECT_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Model, convey.ShouldEqual, "v4")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 25)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.MOICTargets, convey.ShouldResemble, []float64{12, 6, 3})
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
				convey.So(cfg.EquityStakes, convey.ShouldResemble, []float64{1, 5, 10})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
# calculator settings
addr: ":9090"
log_format: json
model: v3
moic_targets: [6, 3]
equity_stakes: [2.5]
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PROSPECT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Model, convey.ShouldEqual, "v3")
				convey.So(cfg.MOICTargets, convey.ShouldResemble, []float64{6, 3})
				convey.So(cfg.EquityStakes, convey.ShouldResemble, []float64{2.5})
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
model: v3
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PROSPECT_CONFIG", tmpFile)
			_ = os.Setenv("PROSPECT_MODEL", "v1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Model, convey.ShouldEqual, "v1")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a missing file", func() {
			cfg, err := config.LoadFile(ctx, "/nonexistent/prospect.yaml")

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a config file sets an empty addr", func() {
			tmpFile := createTempConfigFile("addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When PROSPECT_ADDR is set but empty", func() {
			_ = os.Setenv("PROSPECT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the default addr is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			})
		})

		convey.Convey("When a config file sets a stake above 100 percent", func() {
			tmpFile := createTempConfigFile("equity_stakes: [150]\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "equity stake 150")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When metrics are configured from env", func() {
			_ = os.Setenv("PROSPECT_METRICS_ENABLED", "false")
			_ = os.Setenv("PROSPECT_METRICS_NAMESPACE", "scout")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then both keys are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "scout")
			})
		})

		convey.Convey("When loading config with an unknown model", func() {
			_ = os.Setenv("PROSPECT_MODEL", "v7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PROSPECT_MAX_BATCH_SIZE", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PROSPECT_CONFIG",
		"PROSPECT_ADDR",
		"PROSPECT_MODEL",
		"PROSPECT_LOG_LEVEL",
		"PROSPECT_LOG_FORMAT",
		"PROSPECT_MAX_BATCH_SIZE",
		"PROSPECT_WORKER_COUNT",
		"PROSPECT_QUEUE_SIZE",
		"PROSPECT_MOIC_TARGETS",
		"PROSPECT_EQUITY_STAKES",
		"PROSPECT_CORS_ALLOWED_ORIGINS",
		"PROSPECT_METRICS_ENABLED",
		"PROSPECT_METRICS_NAMESPACE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "prospect-config-*.yaml")
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
