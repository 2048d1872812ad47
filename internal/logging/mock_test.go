package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareEntries(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldFile, "jan.csv")
	grandchild := child.WithError(errors.New("bad row"))

	root.Info("start")
	child.Debug("parsing")
	grandchild.Warn("skipped row", F(FieldLine, 4))

	entries := root.GetEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "start", entries[0].Message)
	assert.Empty(t, entries[0].Fields)

	assert.Equal(t, []Field{F(FieldFile, "jan.csv")}, entries[1].Fields)

	assert.Equal(t, "WARN", entries[2].Level)
	assert.EqualError(t, entries[2].Error, "bad row")
	assert.Equal(t, []Field{F(FieldFile, "jan.csv"), F(FieldLine, 4)}, entries[2].Fields)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Error("boom")
	m.WithField("k", "v").Info("child")

	assert.True(t, m.HasEntry("ERROR", "boom"))
	assert.True(t, m.HasEntry("INFO", "child"))
	assert.Len(t, m.GetEntriesByLevel("INFO"), 1)
}

func TestMockLogger_FatalDoesNotExit(t *testing.T) {
	m := NewMockLogger()
	m.Fatalf("cannot open %s", "x.csv")
	m.Fatal("gone")

	fatals := m.GetEntriesByLevel("FATAL")
	require.Len(t, fatals, 2)
	assert.Equal(t, "cannot open x.csv", fatals[0].Message)
}

func TestMockLogger_Clear(t *testing.T) {
	m := NewMockLogger()
	child := m.WithField("a", 1)
	child.Info("one")
	m.Clear()

	assert.Empty(t, m.GetEntries())
	child.Info("two")
	assert.Len(t, m.GetEntries(), 1)
}

func TestMockLogger_ConcurrentWrites(t *testing.T) {
	m := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.WithField(FieldCount, n).Debug("tick")
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.GetEntries(), 50)
}
