package config

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	AWS         AWSConfig         `mapstructure:"aws"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Dialog      DialogConfig      `mapstructure:"dialog"`
	Fulfillment FulfillmentConfig `mapstructure:"fulfillment"`
	Yelp        YelpConfig        `mapstructure:"yelp"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// AWSConfig holds every AWS-provisioned resource address the workflow
// depends on. Nothing in the request path hard-codes these.
type AWSConfig struct {
	Region string `mapstructure:"region"`

	SQS struct {
		QueueURL string `mapstructure:"queue_url"`
	} `mapstructure:"sqs"`

	DynamoDB struct {
		RestaurantsTable string `mapstructure:"restaurants_table"`
	} `mapstructure:"dynamodb"`

	SES struct {
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`

	Lex struct {
		BotID      string `mapstructure:"bot_id"`
		BotAliasID string `mapstructure:"bot_alias_id"`
		LocaleID   string `mapstructure:"locale_id"`
	} `mapstructure:"lex"`

	S3 struct {
		SnapshotBucket string `mapstructure:"snapshot_bucket"`
		SnapshotKey    string `mapstructure:"snapshot_key"`
	} `mapstructure:"s3"`
}

type DatabaseConfig struct {
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DialogConfig covers the slot-validation side of the conversation.
type DialogConfig struct {
	// UTCOffsetHours pins "today" for date validation. Deployments serving
	// Manhattan run at -4.
	UTCOffsetHours int `mapstructure:"utc_offset_hours"`
}

// FulfillmentConfig tunes the queue poller on the fulfillment side.
type FulfillmentConfig struct {
	PollInterval int `mapstructure:"poll_interval"` // seconds
	DedupTTL     int `mapstructure:"dedup_ttl"`     // seconds
}

// YelpConfig drives the bulk ingestion tool.
type YelpConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Location  string `mapstructure:"location"`
	PageSize  int    `mapstructure:"page_size"`
	MaxOffset int    `mapstructure:"max_offset"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
