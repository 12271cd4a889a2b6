package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		Timestamp:     time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
		File:          "chase_export.csv",
		Records:       42,
		Statement:     "01/28/25 to 01/03/25",
		PaymentMethod: "chase",
		Warnings:      2,
		Committed:     true,
	}
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	e := sampleEntry()
	row := MarshalEntry(e)

	parsed, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, e, parsed)
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	assert.Error(t, err)
}

func TestAppendAndReadAll(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, []Entry{sampleEntry()}))

	second := sampleEntry()
	second.File = "activity.xlsx"
	second.Committed = false
	require.NoError(t, Append(root, []Entry{second}))

	entries, err := ReadAll(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "chase_export.csv", entries[0].File)
	assert.Equal(t, "activity.xlsx", entries[1].File)
	assert.False(t, entries[1].Committed)
}

func TestReadAll_MissingLog(t *testing.T) {
	entries, err := ReadAll(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestAppend_EmptyIsNoOp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Append(root, nil))

	entries, err := ReadAll(root)
	require.NoError(t, err)
	assert.Nil(t, entries)
}
