package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ConsoleFile        string
	ExecFile           string
	FishbaseFile       string
	DataDir            string
	CatchLogDB         string
	PrivilegedUsername string
	SubmitCommand      string
	CooldownSeconds    int
	LogFile            string
	LogLevel           string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	consoleFile := os.Getenv("CONSOLE_FILE")
	if consoleFile == "" {
		return nil, fmt.Errorf("No CONSOLE_FILE in environment")
	}

	execFile := os.Getenv("EXEC_FILE")
	if execFile == "" {
		return nil, fmt.Errorf("No EXEC_FILE in environment")
	}

	fishbaseFile := os.Getenv("FISHBASE_FILE")
	if fishbaseFile == "" {
		return nil, fmt.Errorf("No FISHBASE_FILE in environment")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	cooldownSeconds, err := loadInt("COOLDOWN_SECONDS", 6)
	if err != nil {
		return nil, err
	}

	return &Config{
		ConsoleFile:        consoleFile,
		ExecFile:           execFile,
		FishbaseFile:       fishbaseFile,
		DataDir:            dataDir,
		CatchLogDB:         os.Getenv("CATCHLOG_DB"),
		PrivilegedUsername: os.Getenv("PRIVILEGED_USERNAME"),
		SubmitCommand:      os.Getenv("SUBMIT_COMMAND"),
		CooldownSeconds:    cooldownSeconds,
		LogFile:            os.Getenv("LOG_FILE"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
	}, nil
}

func loadInt(key string, defValue int) (int, error) {
	value := os.Getenv(key)
	if value != "" {
		return strconv.Atoi(value)
	}

	return defValue, nil
}
