package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/staffboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.EmployeeID, convey.ShouldEqual, 1)
				convey.So(cfg.BreakerMaxFailures, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("STAFFBOARD_ADDR", ":8080")
			_ = os.Setenv("STAFFBOARD_BACKEND_URL", "http://backend:5000")
			_ = os.Setenv("STAFFBOARD_EMPLOYEE_ID", "7")
			_ = os.Setenv("STAFFBOARD_REQUEST_TIMEOUT_MS", "1500")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BackendURL, convey.ShouldEqual, "http://backend:5000")
				convey.So(cfg.EmployeeID, convey.ShouldEqual, 7)
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 1500)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
backend_url: "http://file-backend:5000"
employee_id: 3
breaker_max_failures: 2
`)
			_ = os.Setenv("STAFFBOARD_CONFIG", tmpFile)
			_ = os.Setenv("STAFFBOARD_EMPLOYEE_ID", "9")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.BackendURL, convey.ShouldEqual, "http://file-backend:5000")
				convey.So(cfg.EmployeeID, convey.ShouldEqual, 9)
				convey.So(cfg.BreakerMaxFailures, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When a dotenv file is named explicitly", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "staffboard.env")
			convey.So(os.WriteFile(path, []byte("STAFFBOARD_EMPLOYEE_ID=12\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("STAFFBOARD_ENV_FILE", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.EmployeeID, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When the named dotenv file does not exist", func() {
			_ = os.Setenv("STAFFBOARD_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("STAFFBOARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("STAFFBOARD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the loaded values are invalid", func() {
			_ = os.Setenv("STAFFBOARD_EMPLOYEE_ID", "-4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject them", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"STAFFBOARD_CONFIG",
		"STAFFBOARD_ENV_FILE",
		"STAFFBOARD_ADDR",
		"STAFFBOARD_BACKEND_URL",
		"STAFFBOARD_EMPLOYEE_ID",
		"STAFFBOARD_REQUEST_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staffboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
