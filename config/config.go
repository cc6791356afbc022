package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/faresweep/faresweep/offer"
)

// Environment selects which network the browsing session runs against.
type Environment string

const (
	EnvLocal  Environment = "local"
	EnvRemote Environment = "remote"
)

// Mode selects how query units are produced.
type Mode string

const (
	// ModeSingle runs one fixed query.
	ModeSingle Mode = "single"
	// ModeRange sweeps a departure-date range, one query unit per day.
	ModeRange Mode = "range"
	// ModeAuto lets the agent pursue a natural-language goal.
	ModeAuto Mode = "auto"
)

// Policy names the per-unit failure handling. Empty means the mode
// default: skip-and-continue for range sweeps, abort for the others.
type Policy string

const (
	PolicyDefault Policy = ""
	PolicySkip    Policy = "skip"
	PolicyAbort   Policy = "abort"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "90s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", text)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Provider identifies the model endpoint driving the agent and the
// extractor.
type Provider struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float32 `yaml:"temperature"`
}

// APIKey reads the provider credential from the configured environment
// variable. Credentials never live in the config file.
func (p Provider) APIKey() string {
	return os.Getenv(p.APIKeyEnv)
}

// Timeouts are the caller-configurable bounds on the long-latency steps.
type Timeouts struct {
	Unit Duration `yaml:"unit"`
	HTTP Duration `yaml:"http"`
	LLM  Duration `yaml:"llm"`
}

// Sweep defines the run: mode, targets and per-unit bounds.
type Sweep struct {
	Mode              Mode    `yaml:"mode"`
	URL               string  `yaml:"url"`
	URLTemplate       string  `yaml:"url_template"`
	Instruction       string  `yaml:"instruction"`
	Goal              string  `yaml:"goal"`
	StartDate         string  `yaml:"start_date"`
	EndDate           string  `yaml:"end_date"`
	Limit             int     `yaml:"limit"`
	Policy            Policy  `yaml:"policy"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Config is the one explicit configuration structure for a run.
type Config struct {
	Env         Environment       `yaml:"env"`
	Provider    Provider          `yaml:"provider"`
	Timeouts    Timeouts          `yaml:"timeouts"`
	Constraints offer.Constraints `yaml:"constraints"`
	Sweep       Sweep             `yaml:"sweep"`
}

// Default returns the baseline configuration Load layers a file over.
// It is not runnable on its own: each mode still needs its target
// (sweep.url, url_template or goal) before Validate passes.
func Default() *Config {
	return &Config{
		Env: EnvLocal,
		Provider: Provider{
			Model:     "gpt-4o",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Timeouts: Timeouts{
			Unit: Duration(2 * time.Minute),
			HTTP: Duration(30 * time.Second),
			LLM:  Duration(60 * time.Second),
		},
		Constraints: offer.Constraints{
			MaxStops:          2,
			MaxTotalMinutes:   24 * 60,
			MaxLayoverMinutes: 5 * 60,
		},
		Sweep: Sweep{
			Mode:  ModeSingle,
			Limit: 10,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if model := os.Getenv("FARESWEEP_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if baseURL := os.Getenv("FARESWEEP_BASE_URL"); baseURL != "" {
		c.Provider.BaseURL = baseURL
	}
	if env := os.Getenv("FARESWEEP_ENV"); env != "" {
		c.Env = Environment(env)
	}
}

// Validate checks enumerations and the fields each mode requires.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvRemote:
	default:
		return errors.Errorf("unknown env %q", c.Env)
	}
	switch c.Sweep.Policy {
	case PolicyDefault, PolicySkip, PolicyAbort:
	default:
		return errors.Errorf("unknown policy %q", c.Sweep.Policy)
	}
	if c.Sweep.Limit <= 0 {
		return errors.New("sweep limit must be positive")
	}
	if c.Provider.Model == "" {
		return errors.New("provider model is required")
	}

	switch c.Sweep.Mode {
	case ModeSingle:
		if c.Sweep.URL == "" {
			return errors.New("single mode requires sweep.url")
		}
	case ModeRange:
		if !strings.Contains(c.Sweep.URLTemplate, "{date}") {
			return errors.New("range mode requires sweep.url_template with a {date} slot")
		}
		start, end, err := c.DateRange()
		if err != nil {
			return err
		}
		if end.Before(start) {
			return errors.New("sweep end_date is before start_date")
		}
	case ModeAuto:
		if c.Sweep.Goal == "" {
			return errors.New("auto mode requires sweep.goal")
		}
	default:
		return errors.Errorf("unknown mode %q", c.Sweep.Mode)
	}
	return nil
}

// DateRange parses the sweep's departure-date bounds.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Sweep.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parse sweep start_date")
	}
	end, err := time.Parse("2006-01-02", c.Sweep.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parse sweep end_date")
	}
	return start, end, nil
}
