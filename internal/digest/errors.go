package digest

import "fmt"

// ConfigError wraps a configuration problem detected before any I/O.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// DeliveryError wraps a failed publish. The digest was built but not sent.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("delivery: %v", e.Err) }
func (e *DeliveryError) Unwrap() error { return e.Err }
