package console

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleRecordsBothDirections(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("add\r\ncapital\n"), &out, nil)

	c.WriteLine("Input the action:")
	line, ok := c.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "add", line)

	c.WriteLine("The card:")
	line, ok = c.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "capital", line)

	_, ok = c.ReadLine()
	assert.False(t, ok)

	assert.Equal(t, "Input the action:\nThe card:\n", out.String())

	var saved bytes.Buffer
	require.NoError(t, c.SaveTranscript(&saved))
	assert.Equal(t, "Input the action:\nadd\nThe card:\ncapital\n", saved.String())
}

func TestConsoleSaveTranscript(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("exit\n"), &out, nil)
	c.WriteLine("menu")
	_, _ = c.ReadLine()
	c.WriteLine("")

	var saved bytes.Buffer
	require.NoError(t, c.SaveTranscript(&saved))
	assert.Equal(t, "menu\nexit\n\n", saved.String())
}

func TestConsoleReplacesInvalidUTF8(t *testing.T) {
	c := New(strings.NewReader("caf\xe9\ncaf\xe8\n"), &bytes.Buffer{}, nil)

	first, ok := c.ReadLine()
	require.True(t, ok)
	second, ok := c.ReadLine()
	require.True(t, ok)

	assert.True(t, utf8.ValidString(first))
	assert.Equal(t, "caf\uFFFD", first)
	assert.Equal(t, first, second)
}

func TestConsoleLastLineWithoutNewline(t *testing.T) {
	c := New(strings.NewReader("one\ntwo"), &bytes.Buffer{}, nil)
	first, _ := c.ReadLine()
	second, ok := c.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "one", first)
	assert.Equal(t, "two", second)
}
