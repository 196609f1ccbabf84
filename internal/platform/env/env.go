package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Prefix scopes every lookup to keys starting with a fixed service prefix.
type Prefix string

func (p Prefix) Key(name string) string {
	return string(p) + name
}

func (p Prefix) String(name string, def string) string {
	return String(p.Key(name), def)
}

func (p Prefix) Duration(name string, def time.Duration) (time.Duration, error) {
	return Duration(p.Key(name), def)
}

func (p Prefix) Seconds(name string, def time.Duration) (time.Duration, error) {
	return Seconds(p.Key(name), def)
}

func (p Prefix) Bool(name string, def bool) (bool, error) {
	return Bool(p.Key(name), def)
}

func (p Prefix) Int(name string, def int) (int, error) {
	return Int(p.Key(name), def)
}

func String(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func Duration(key string, def time.Duration) (time.Duration, error) {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}
		return d, nil
	}
	return def, nil
}

// Seconds accepts either a bare integer number of seconds or a Go duration string.
func Seconds(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func Bool(key string, def bool) (bool, error) {
	if v, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("parse %s: %w", key, err)
		}
		return b, nil
	}
	return def, nil
}

func Int(key string, def int) (int, error) {
	if v, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}
		return i, nil
	}
	return def, nil
}
