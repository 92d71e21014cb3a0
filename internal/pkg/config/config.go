package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values when a key is missing or not convertible.
type Config interface {
	io.Closer

	// GetBool retrieves the value for the given key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value for the given key as a string.
	GetString(key string) string

	// GetInt retrieves the value for the given key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for the given key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value for the given key as an int64.
	GetInt64(key string) int64

	// GetUint retrieves the value for the given key as a uint.
	GetUint(key string) uint

	// GetUint16 retrieves the value for the given key as a uint16.
	GetUint16(key string) uint16

	// GetUint32 retrieves the value for the given key as a uint32.
	GetUint32(key string) uint32

	// GetUint64 retrieves the value for the given key as a uint64.
	GetUint64(key string) uint64

	// GetFloat32 retrieves the value for the given key as a float32.
	GetFloat32(key string) float32

	// GetFloat64 retrieves the value for the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the value for the given key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value for the given key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value for the given key as a duration in hours.
	GetHour(key string) time.Duration

	// GetDay retrieves the value for the given key as a duration in days (24h).
	GetDay(key string) time.Duration

	// GetBinary retrieves the value for the given key as bytes.
	// The configuration value is stored base64 encoded.
	GetBinary(key string) []byte

	// GetArray retrieves the value for the given key as a string slice.
	// The configuration value is stored as <element1>,<element2>,...
	GetArray(key string) []string

	// GetMap retrieves the value for the given key as a string map.
	// The configuration value is stored as <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
