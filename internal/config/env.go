package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds the settings taken from the environment.
type Env struct {
	Ledger struct {
		ServerURL      string `envconfig:"LEDGER_SERVER_URL"`
		APIKey         string `envconfig:"LEDGER_API_KEY"`
		BudgetPassword string `envconfig:"LEDGER_BUDGET_PASSWORD"`
		DataDir        string `envconfig:"LEDGER_DATA_DIR" default:".reconcile"`
	}

	Tabula struct {
		Jar  string `envconfig:"TABULA_JAR"`
		Java string `envconfig:"TABULA_JAVA" default:"java"`
	}

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Accessible switches prompts to plain line-based input.
	Accessible bool `envconfig:"ACCESSIBLE"`
}

// LoadEnv reads the environment after loading dotenv files, if present.
// Variables already set in the environment win over the files.
func LoadEnv(files ...string) (*Env, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &env, nil
}
