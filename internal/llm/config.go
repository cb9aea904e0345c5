package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of model task being performed.
type TaskType string

const (
	// TaskDailyPlan generates a structured day plan from journal context.
	TaskDailyPlan TaskType = "daily_plan"
	// TaskReflection summarizes a journal entry into a short reflection.
	TaskReflection TaskType = "reflection"
)

// Provider names for the model backend.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides the global timeout if > 0
}

// Config holds all configuration for the model subsystem.
type Config struct {
	Provider   string
	Endpoint   string
	Model      string
	APIKey     string
	LogCalls   bool
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config pointed at a local Ollama instance.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskDailyPlan:  {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 90000},
			TaskReflection: {Temperature: 0.4, MaxTokens: 512, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads model configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DAYPLAN_LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DAYPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAYPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DAYPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskDailyPlan, "DAYPLAN_LLM_PLAN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskReflection, "DAYPLAN_LLM_REFLECTION_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a task, preferring the
// task-specific value over the global one.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
