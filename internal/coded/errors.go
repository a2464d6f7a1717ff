package coded

import (
	"errors"
	"fmt"
)

// ConfigError marks invalid parameters detected before any light has been
// commanded. It maps to a usage-style process exit.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func ConfigErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
