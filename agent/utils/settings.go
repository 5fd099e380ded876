package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FINDY_EXCHANGE"

// Store backends
const (
	StoreMemory = "memory"
	StoreBolt   = "bolt"
	StoreRedis  = "redis"
)

const (
	defaultTimeout  = 1 * time.Minute
	defaultLogging  = "-logtostderr=true -v=2"
	defaultRevBatch = 5 * time.Minute
)

// Settings are the process level defaults. LoadSettings returns a new Hub,
// assign it here if you want to change the defaults.
var Settings = NewHub()

type Hub struct {
	label       string   // agent label sent in DID exchange requests
	endpoint    string   // our service endpoint URL in DID docs
	routingKeys []string // mediator keys in our DID docs

	storeType string // memory, bolt or redis
	storePath string // bolt file
	storeKey  string // hex encoded bolt encryption key, empty: no encryption
	redisAddr string

	tailsDir         string
	revBatchInterval time.Duration // zero means no scheduled revocation publishing

	timeout time.Duration // HTTP transport timeout
	retries uint64        // zero means no retry

	logging string
}

func NewHub() *Hub {
	return &Hub{
		storeType:        StoreMemory,
		timeout:          defaultTimeout,
		revBatchInterval: defaultRevBatch,
		logging:          defaultLogging,
	}
}

var envs = map[string]string{
	"config":             "CONFIG",
	"label":              "LABEL",
	"endpoint":           "ENDPOINT",
	"routing-keys":       "ROUTING_KEYS",
	"store":              "STORE",
	"store-path":         "STORE_PATH",
	"store-key":          "STORE_KEY",
	"redis-addr":         "REDIS_ADDR",
	"tails-dir":          "TAILS_DIR",
	"rev-batch-interval": "REV_BATCH_INTERVAL",
	"timeout":            "TIMEOUT",
	"retries":            "RETRIES",
	"logging":            "LOGGING",
}

// Flags returns the flag set LoadSettings understands. Callers can merge it
// to their own command line.
func Flags() *pflag.FlagSet {
	d := NewHub()
	flags := pflag.NewFlagSet("findy-exchange", pflag.ContinueOnError)
	flags.String("config", "", flagInfo("configuration file", envs["config"]))
	flags.String("label", "", flagInfo("agent label", envs["label"]))
	flags.String("endpoint", "", flagInfo("service endpoint URL", envs["endpoint"]))
	flags.StringSlice("routing-keys", nil, flagInfo("mediator routing keys", envs["routing-keys"]))
	flags.String("store", d.storeType, flagInfo("store backend: memory, bolt, redis", envs["store"]))
	flags.String("store-path", "", flagInfo("bolt store file", envs["store-path"]))
	flags.String("store-key", "", flagInfo("bolt store encryption key in hex", envs["store-key"]))
	flags.String("redis-addr", "", flagInfo("redis address", envs["redis-addr"]))
	flags.String("tails-dir", "", flagInfo("revocation tails directory", envs["tails-dir"]))
	flags.Duration("rev-batch-interval", d.revBatchInterval, flagInfo("local revocation publish interval", envs["rev-batch-interval"]))
	flags.Duration("timeout", d.timeout, flagInfo("transport timeout", envs["timeout"]))
	flags.Uint64("retries", 0, flagInfo("transport retry count", envs["retries"]))
	flags.String("logging", d.logging, flagInfo("logging startup arguments", envs["logging"]))
	return flags
}

// LoadSettings reads settings from args, FINDY_EXCHANGE_* environment
// variables and the optional config file, in that priority order.
func LoadSettings(args []string) (h *Hub, err error) {
	defer err2.Handle(&err, "load settings")

	flags := Flags()
	try.To(flags.Parse(args))

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	try.To(v.BindPFlags(flags))
	for key, env := range envs {
		try.To(v.BindEnv(key, envPrefix+"_"+env))
	}
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		try.To(v.ReadInConfig())
		glog.V(1).Infoln("using config file:", v.ConfigFileUsed())
	}

	h = &Hub{
		label:            v.GetString("label"),
		endpoint:         v.GetString("endpoint"),
		routingKeys:      v.GetStringSlice("routing-keys"),
		storeType:        v.GetString("store"),
		storePath:        v.GetString("store-path"),
		storeKey:         v.GetString("store-key"),
		redisAddr:        v.GetString("redis-addr"),
		tailsDir:         v.GetString("tails-dir"),
		revBatchInterval: v.GetDuration("rev-batch-interval"),
		timeout:          v.GetDuration("timeout"),
		retries:          v.GetUint64("retries"),
		logging:          v.GetString("logging"),
	}
	switch h.storeType {
	case StoreMemory, StoreBolt, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown store backend %q", h.storeType)
	}
	return h, nil
}

func flagInfo(info, envName string) string {
	return info + ", " + envPrefix + "_" + envName
}

func (h *Hub) Label() string {
	return h.label
}

func (h *Hub) SetLabel(label string) {
	h.label = label
}

// Endpoint is the service endpoint URL we publish in our DID documents.
func (h *Hub) Endpoint() string {
	if h.endpoint == "" && glog.V(3) {
		glog.Info("warning endpoint is empty")
	}
	return h.endpoint
}

func (h *Hub) SetEndpoint(endpoint string) {
	h.endpoint = endpoint
}

func (h *Hub) RoutingKeys() []string {
	return h.routingKeys
}

func (h *Hub) StoreType() string {
	return h.storeType
}

func (h *Hub) SetStoreType(t string) {
	h.storeType = t
}

func (h *Hub) StorePath() string {
	return h.storePath
}

func (h *Hub) SetStorePath(path string) {
	h.storePath = path
}

func (h *Hub) StoreKey() string {
	return h.storeKey
}

func (h *Hub) RedisAddr() string {
	return h.redisAddr
}

func (h *Hub) SetRedisAddr(addr string) {
	h.redisAddr = addr
}

// TailsDir returns the tails directory, by default the one libindy uses
// under the home directory.
func (h *Hub) TailsDir() string {
	if h.tailsDir == "" {
		return DefaultTailsDir()
	}
	return h.tailsDir
}

func (h *Hub) RevBatchInterval() time.Duration {
	return h.revBatchInterval
}

// Timeout returns the transport timeout, defaultTimeout if not set.
func (h *Hub) Timeout() time.Duration {
	if h.timeout == 0 {
		return defaultTimeout
	}
	return h.timeout
}

func (h *Hub) Retries() uint64 {
	return h.retries
}

func (h *Hub) Logging() string {
	return h.logging
}
