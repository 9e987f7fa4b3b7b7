package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsLevels(t *testing.T) {
	m := &MockLogger{}
	m.Debug("d")
	m.Info("i", Field{Key: FieldCategory, Value: "vat"})
	m.Warn("w")
	m.Error("e")
	m.Fatalf("f %d", 1)

	entries := m.GetEntries()
	require.Len(t, entries, 5)
	assert.True(t, m.HasEntry("INFO", "i"))
	assert.True(t, m.HasEntry("FATAL", "f 1"))
	assert.Equal(t, []Field{{Key: FieldCategory, Value: "vat"}}, entries[1].Fields)

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

func TestMockLogger_DerivedLoggersShareSink(t *testing.T) {
	m := &MockLogger{}
	testErr := errors.New("boom")

	m.WithField(FieldRow, 3).WithError(testErr).Warn("row failed", Field{Key: FieldCategory, Value: "income"})

	warns := m.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, testErr, warns[0].Error)
	assert.Equal(t, []Field{{Key: FieldRow, Value: 3}, {Key: FieldCategory, Value: "income"}}, warns[0].Fields)
}

func TestMockLogger_ConcurrentRecording(t *testing.T) {
	m := &MockLogger{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.WithField(FieldRow, 1).Debug("tick")
		}()
	}
	wg.Wait()
	assert.Len(t, m.GetEntriesByLevel("DEBUG"), 50)
}

func TestMockLogger_ImplementsInterface(t *testing.T) {
	var _ Logger = (*MockLogger)(nil)
}
