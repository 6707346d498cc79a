package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Limits are the admission/trim parameters consumed by the rate limiter
// and the conversation buffer. They default from the environment and can
// be overridden (and hot-reloaded) from limits.yml.
type Limits struct {
	RateLimitPerDay        int `mapstructure:"rateLimitPerDay"`
	ConversationMemorySize int `mapstructure:"conversationMemorySize"`
}

func (l Limits) withDefaults(cfg Config) Limits {
	if l.RateLimitPerDay <= 0 {
		l.RateLimitPerDay = cfg.RateLimitPerDay
	}
	if l.ConversationMemorySize <= 0 {
		l.ConversationMemorySize = cfg.ConversationMemorySize
	}
	return l
}

type LimitsHolder struct {
	current atomic.Value // holds Limits
}

// NewLimitsHolder reads limits.yml when present and watches it for
// changes. A missing file is not an error; env defaults apply.
func NewLimitsHolder(cfg Config) (*LimitsHolder, error) {
	v := viper.New()

	v.SetConfigName("limits")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/khuchi")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KHUCHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	holder := &LimitsHolder{}
	load := func() {
		var limits Limits
		if err := v.UnmarshalKey("limits", &limits); err != nil {
			log.Printf("limits config unmarshal failed, keeping previous values: %v", err)
			return
		}
		holder.current.Store(limits.withDefaults(cfg))
	}
	load()

	if fileFound {
		v.OnConfigChange(func(_ fsnotify.Event) { load() })
		v.WatchConfig()
	}

	return holder, nil
}

// NewStaticLimits returns a holder pinned to fixed values. Test helper.
func NewStaticLimits(limits Limits) *LimitsHolder {
	holder := &LimitsHolder{}
	holder.current.Store(limits)
	return holder
}

func (h *LimitsHolder) Current() Limits {
	if v, ok := h.current.Load().(Limits); ok {
		return v
	}
	return Limits{}
}
