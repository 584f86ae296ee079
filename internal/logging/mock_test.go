package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	m := NewMockLogger()

	m.Info("starting", Field{Key: FieldDirectory, Value: "/tmp"})
	m.Warn("careful")

	require.Len(t, m.GetEntries(), 2)
	assert.True(t, m.HasEntry("INFO", "starting"))
	assert.True(t, m.HasEntry("WARN", "careful"))
	assert.False(t, m.HasEntry("ERROR", "starting"))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	m := NewMockLogger()
	cause := errors.New("boom")

	m.WithField(FieldFile, "a.csv").WithError(cause).Error("failed")

	entries := m.GetEntriesByLevel("ERROR")
	require.Len(t, entries, 1)
	assert.Equal(t, cause, entries[0].Error)

	v, ok := entries[0].FieldValue(FieldFile)
	require.True(t, ok)
	assert.Equal(t, "a.csv", v)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Debug("zero")
	assert.Len(t, m.GetEntries(), 1)
}
