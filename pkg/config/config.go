package config

import (
	"time"
)

type DB struct {
	Url          string        `envconfig:"URL" default:"sqlite://coinswap.db"`
	Migrate      bool          `envconfig:"MIGRATE" default:"true"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnLifetime time.Duration `envconfig:"CONN_LIFETIME" default:"1h"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"30m"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// StartingBalance is credited to every newly registered account, in major units.
type StartingBalance struct {
	PEN float64 `envconfig:"PEN" default:"100"`
	USD float64 `envconfig:"USD" default:"0"`
}

type Account struct {
	StartingBalance *StartingBalance `envconfig:"STARTING_BALANCE"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"coinswap:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// ExchangeRate configures the rate adapters and the selector.
type ExchangeRate struct {
	DefaultAdapter  string        `envconfig:"DEFAULT_ADAPTER" default:"exchangerateapi"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	ExchangeRateURL string        `envconfig:"EXCHANGERATEAPI_URL" default:"https://api.exchangerate-api.com/v4/latest"`
	OpenERURL       string        `envconfig:"OPENERAPI_URL" default:"https://open.er-api.com/v6/latest"`
	FixedEnabled    bool          `envconfig:"FIXED_ENABLED" default:"false"`
	// FixedRates holds the static quotes of the fixed adapter as
	// units of each currency per one USD.
	FixedRates map[string]float64 `envconfig:"FIXED_RATES" default:"USD:1,PEN:3.75"`
}

type Kafka struct {
	Brokers []string `envconfig:"BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"TOPIC" default:"coinswap.operations"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
	Kafka  *Kafka `envconfig:"KAFKA"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[coin-swap]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"8000"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	DB           *DB           `envconfig:"DATABASE"`
	Auth         *Auth         `envconfig:"AUTH"`
	Account      *Account      `envconfig:"ACCOUNT"`
	ExchangeRate *ExchangeRate `envconfig:"EXCHANGE_RATE"`
	Redis        *Redis        `envconfig:"REDIS"`
	EventBus     *EventBus     `envconfig:"EVENTBUS"`
}
