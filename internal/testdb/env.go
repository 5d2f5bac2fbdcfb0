package testdb

import (
	"log/slog"
	"os"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/redact"
)

// Environment variables naming the integration test stores.
const (
	EnvPostgresURL = "TASKLIST_TEST_POSTGRES_URL"
	EnvMongoURL    = "TASKLIST_TEST_MONGO_URL"
)

// ciEnvVars are set by the common CI providers.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
}

// IsCI reports whether the tests are running under a CI provider.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// PostgresURL returns the Postgres connection string for integration tests.
func PostgresURL(t testing.TB) string {
	t.Helper()
	return requireURL(t, EnvPostgresURL)
}

// MongoURL returns the MongoDB connection string for integration tests.
func MongoURL(t testing.TB) string {
	t.Helper()
	return requireURL(t, EnvMongoURL)
}

// requireURL returns the value of envVar. When it is unset the test is
// skipped locally and failed in CI.
func requireURL(t testing.TB, envVar string) string {
	t.Helper()

	url := os.Getenv(envVar)
	if url == "" {
		if IsCI() {
			t.Fatalf("%s must be set in CI", envVar)
		}
		t.Skipf("%s not set", envVar)
	}

	slog.Debug("using integration test store",
		slog.String("env_var", envVar),
		slog.String("url", redact.String(url)))
	return url
}
