package sysctl

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRender_String(t *testing.T) {
	s, ok := render("kernel.hostname", "isolated", discardLogger())
	require.True(t, ok)
	require.Equal(t, "isolated", s)
}

func TestRender_Integer(t *testing.T) {
	s, ok := render("net.ipv4.ip_forward", int64(1), discardLogger())
	require.True(t, ok)
	require.Equal(t, "1", s)
}

func TestRender_Typed(t *testing.T) {
	s, ok := render("net.core.somaxconn", map[string]interface{}{
		"type":  "u32",
		"value": int64(1024),
	}, discardLogger())
	require.True(t, ok)
	require.Equal(t, "1024", s)
}

func TestRender_UnknownTypeTag(t *testing.T) {
	_, ok := render("bad.entry", map[string]interface{}{
		"type":  "float9000",
		"value": int64(1),
	}, discardLogger())
	require.False(t, ok)
}

func TestRender_MissingTypeField(t *testing.T) {
	_, ok := render("bad.entry", map[string]interface{}{
		"value": int64(1),
	}, discardLogger())
	require.False(t, ok)
}

func TestRender_WrongPayloadKind(t *testing.T) {
	_, ok := render("bad.entry", map[string]interface{}{
		"type":  "u32",
		"value": "not-an-int",
	}, discardLogger())
	require.False(t, ok)
}

func TestRender_UnhandledShape(t *testing.T) {
	_, ok := render("bad.entry", 3.14, discardLogger())
	require.False(t, ok)
}

func TestApply_IsTotal(t *testing.T) {
	// Every entry here is malformed or points at a path that cannot exist;
	// Apply must still return normally.
	table := map[string]interface{}{
		"bad.entry.one": map[string]interface{}{"type": "nope"},
		"bad.entry.two": 3.14,
		"nonexistent.kernel.control.xyz": "1",
	}
	require.NotPanics(t, func() {
		Apply(table, discardLogger())
	})
}
