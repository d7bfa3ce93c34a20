package types

type RunMode string

const (
	// ModeLocal runs the API server with debug friendly defaults
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// NotificationFailurePolicy decides what happens when a confirmation mail
// cannot be delivered after the triggering write already committed
type NotificationFailurePolicy string

const (
	// NotificationFailureRaise surfaces the failure to the caller
	NotificationFailureRaise NotificationFailurePolicy = "raise"
	// NotificationFailureLogOnly records the failure on the operational channel only
	NotificationFailureLogOnly NotificationFailurePolicy = "log_only"
)

// SeriesSource selects where dashboard chart data comes from
type SeriesSource string

const (
	// SeriesSourceLive groups shipments and trades by creation month
	SeriesSourceLive SeriesSource = "live"
	// SeriesSourcePlaceholder returns the fixed provisional chart data
	SeriesSourcePlaceholder SeriesSource = "placeholder"
)
