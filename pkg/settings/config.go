package settings

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// consts
const (
	Name = "Muninn"
)

// Config ...
type Config struct {
	Name       string `ignored:"true"`
	Version    string `ignored:"true"`
	HTTPListen string `envconfig:"HTTP_LISTEN" default:":5001"`
	RedisURI   string `envconfig:"redis_uri" default:"redis://localhost:6379/1"`

	TrustProxies []string `envconfig:"Trust_Proxies" default:"127.0.0.1,::1"`

	OpenAIAPIKey   string  `envconfig:"openAi_Api_Key"`
	ChatModel      string  `envconfig:"chat_model" default:"gpt-3.5-turbo"`
	EmbeddingModel string  `envconfig:"embedding_model" default:"text-embedding-ada-002"`
	MaxTokens      int     `envconfig:"max_tokens" default:"512"`
	Temperature    float32 `envconfig:"temperature" default:"0.5"`

	ChatworkToken string `envconfig:"chatwork_token"`
	WebhookSecret string `envconfig:"webhook_secret"` // base64; empty disables verification
	WebhookLimit  string `envconfig:"webhook_limit" default:"30-M"`

	StorePrefix    string `envconfig:"store_prefix" default:"sheet"`
	CorpusName     string `envconfig:"corpus_name" default:"embedding"`
	EventLogName   string `envconfig:"event_log_name" default:"log"`
	ResetSentinel  string `envconfig:"reset_sentinel" default:"[削除]"`
	GroundSentinel string `envconfig:"ground_sentinel" default:"[制約]"`

	PresetFile string `envconfig:"preset_file"`
}

var (
	// Current 当前配置
	Current = new(Config)
)

func init() {
	if err := envconfig.Process(Name, Current); err != nil {
		log.Printf("envconfig process fail: %s", err)
	}

	Current.Name = Name
	Current.Version = version
}

// Usage 打印配置帮助
func Usage() error {
	log.Printf("ver: %s", Current.Version)
	return envconfig.Usage(Current.Name, Current)
}
