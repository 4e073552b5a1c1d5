package llmclient

import "fmt"

// ErrorKind classifies a failed call per §4.5's error taxonomy.
type ErrorKind string

const (
	KindConfig    ErrorKind = "ConfigError"
	KindAuth      ErrorKind = "AuthError"
	KindQuota     ErrorKind = "QuotaError"
	KindArg       ErrorKind = "ArgError"
	KindRateLimit ErrorKind = "RateLimit"
	KindOverload  ErrorKind = "Overloaded"
	KindServer    ErrorKind = "ServerError"
	KindTimeout   ErrorKind = "Timeout"
	KindTransport ErrorKind = "TransportError"
)

// CallError is the typed error every failed Client.Call returns.
type CallError struct {
	Kind     ErrorKind
	Provider Provider
	Message  string
	Hint     string
	Cause    error
}

func (e *CallError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%s): %s — %s", e.Kind, e.Provider, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Provider, e.Message)
}

func (e *CallError) Unwrap() error { return e.Cause }

// classifyStatus maps an HTTP status code to an ErrorKind, per §4.5's table.
// It does not look at the provider: 402 (QuotaError) is provider-B
// semantics, but it is mapped to KindQuota for either provider.
func classifyStatus(status int) (ErrorKind, bool) {
	switch status {
	case 401:
		return KindAuth, true
	case 402:
		return KindQuota, true
	case 400, 422:
		return KindArg, true
	case 429:
		return KindRateLimit, true
	case 503, 504:
		return KindOverload, true
	case 500:
		return KindServer, true
	default:
		return "", false
	}
}
