package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "RESEARCH_SCOUT_CONFIG"
	siteBaseURLEnv    = "SITE_BASE_URL"
	researchDepthEnv  = "RESEARCH_DEPTH"
	outputDirEnv      = "OUTPUT_DIR"
	logLevelEnv       = "LOG_LEVEL"
	chatGPTAPIKeyEnv  = "CHATGPT_API_KEY"
	chatGPTModelEnv   = "CHATGPT_MODEL"
	chatGPTCountEnv   = "CHATGPT_SUGGESTION_COUNT"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	HTTP          HTTPConfig         `yaml:"http"`
	Site          SiteConfig         `yaml:"site"`
	Research      ResearchConfig     `yaml:"research"`
	Output        OutputConfig       `yaml:"output"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig is shared by the site crawler and the research feed client.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// SiteConfig describes the documentation site to crawl.
type SiteConfig struct {
	BaseURL          string   `yaml:"baseUrl"`
	LinkPrefixes     []string `yaml:"linkPrefixes"`
	ContentSelectors []string `yaml:"contentSelectors"`
	MaxPages         int      `yaml:"maxPages"`
}

// ResearchConfig tunes external paper collection.
type ResearchConfig struct {
	Source       string        `yaml:"source"`
	Depth        string        `yaml:"depth"`
	Endpoint     string        `yaml:"endpoint"`
	RequestDelay time.Duration `yaml:"requestDelay"`
	WindowDays   int           `yaml:"windowDays"`
	Dedupe       bool          `yaml:"dedupe"`
}

// OutputConfig says where reports and markdown stubs are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	DraftsDir string `yaml:"draftsDir"`
}

// SchedulerConfig defines when the pipeline should run in schedule mode.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both token and chat are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Model           string        `yaml:"model"`
	APIKey          string        `yaml:"apiKey"`
	SystemPrompt    string        `yaml:"systemPrompt"`
	Timeout         time.Duration `yaml:"timeout"`
	SuggestionCount int           `yaml:"suggestionCount"`
}

// Load reads YAML configuration (explicit path first, then RESEARCH_SCOUT_CONFIG)
// and applies environment overrides.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(siteBaseURLEnv); v != "" {
		c.Site.BaseURL = v
	}
	if v := os.Getenv(researchDepthEnv); v != "" {
		c.Research.Depth = v
	}
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
	if v := os.Getenv(chatGPTCountEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ChatGPT.SuggestionCount = n
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.HTTP.Timeout > 0 {
		base.HTTP.Timeout = override.HTTP.Timeout
	}
	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}

	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}
	if len(override.Site.LinkPrefixes) > 0 {
		base.Site.LinkPrefixes = override.Site.LinkPrefixes
	}
	if len(override.Site.ContentSelectors) > 0 {
		base.Site.ContentSelectors = override.Site.ContentSelectors
	}
	if override.Site.MaxPages > 0 {
		base.Site.MaxPages = override.Site.MaxPages
	}

	if override.Research.Source != "" {
		base.Research.Source = override.Research.Source
	}
	if override.Research.Depth != "" {
		base.Research.Depth = override.Research.Depth
	}
	if override.Research.Endpoint != "" {
		base.Research.Endpoint = override.Research.Endpoint
	}
	if override.Research.RequestDelay > 0 {
		base.Research.RequestDelay = override.Research.RequestDelay
	}
	if override.Research.WindowDays > 0 {
		base.Research.WindowDays = override.Research.WindowDays
	}
	if override.Research.Dedupe {
		base.Research.Dedupe = true
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}
	if override.Output.DraftsDir != "" {
		base.Output.DraftsDir = override.Output.DraftsDir
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}
	if override.ChatGPT.Timeout > 0 {
		base.ChatGPT.Timeout = override.ChatGPT.Timeout
	}
	if override.ChatGPT.SuggestionCount > 0 {
		base.ChatGPT.SuggestionCount = override.ChatGPT.SuggestionCount
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		HTTP:    HTTPConfig{Timeout: 20 * time.Second, UserAgent: "ResearchScout/1.0"},
		Site: SiteConfig{
			BaseURL:          "https://sam-brisson.github.io/ai-comm-patterns/",
			LinkPrefixes:     []string{"/docs/", "docs/", "/blog/", "/articles/"},
			ContentSelectors: []string{"article", ".theme-doc-markdown", ".markdown", "main", ".content"},
			MaxPages:         50,
		},
		Research: ResearchConfig{
			Source:       "arxiv",
			Depth:        "light",
			Endpoint:     "http://export.arxiv.org/api/query",
			RequestDelay: 3 * time.Second,
			WindowDays:   180,
		},
		Output:    OutputConfig{Dir: "research-output", DraftsDir: "drafts"},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * 1", Timezone: defaultTimezone, location: tz},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		ChatGPT: ChatGPTConfig{
			Endpoint:        "https://api.openai.com/v1/chat/completions",
			Model:           "gpt-4o-mini",
			APIKey:          "",
			SystemPrompt:    "You are a content strategist for a site about human/AI collaboration. Reply with a JSON array only.",
			Timeout:         60 * time.Second,
			SuggestionCount: 5,
		},
	}
}
