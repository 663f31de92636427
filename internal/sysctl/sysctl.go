// Package sysctl applies a typed key/value table of kernel sysctls. Entries
// come from a TOML table decoded into map[string]interface{}; each value is
// either a plain string, a plain integer, or a table carrying an explicit
// width tag. The pass is total: a malformed or unknown entry is logged and
// skipped, never fatal.
package sysctl

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// widthTags enumerates the width tags the typed table form accepts.
var widthTags = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true,
	"uint": true, "ulong": true,
	"s8": true, "s16": true, "s32": true, "s64": true,
	"int": true, "long": true,
}

// Apply sets each entry in table via /proc/sys, logging and skipping any
// entry that fails or is malformed. It never returns an error.
func Apply(table map[string]interface{}, logger *slog.Logger) {
	for key, value := range table {
		rendered, ok := render(key, value, logger)
		if !ok {
			continue
		}
		if err := set(key, rendered); err != nil {
			logger.Error("failed setting sysctl", "key", key, "error", err)
		}
	}
}

// render converts a decoded TOML value into the string /proc/sys expects,
// mirroring the original implementation's toml::Value match arms one for
// one (string, integer, or { type, value } table with a width tag).
func render(key string, value interface{}, logger *slog.Logger) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case map[string]interface{}:
		tag, ok := v["type"].(string)
		if !ok {
			logger.Error("invalid format for typed sysctl entry", "key", key)
			return "", false
		}
		if !widthTags[tag] {
			logger.Error("unknown type for typed sysctl entry", "key", key, "type", tag)
			return "", false
		}
		n, ok := v["value"].(int64)
		if !ok {
			logger.Error("invalid format for typed sysctl entry", "key", key)
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	default:
		logger.Error("unhandled sysctl value type for entry", "key", key, "value", fmt.Sprintf("%v", value))
		return "", false
	}
}

// set writes value to the /proc/sys control named by key, translating
// "a.b.c" into "/proc/sys/a/b/c" the way the sysctl(8) name scheme does.
func set(key, value string) error {
	path := filepath.Join("/proc/sys", filepath.Join(strings.Split(key, ".")...))
	return os.WriteFile(path, []byte(value), 0o644)
}
