package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/examchat"
	examjson "github.com/fwojciec/examchat/json"
	"github.com/fwojciec/examchat/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "# Plan ★\n\nRead **the *notes*** and `run it`.\n\n- [docs](https://example.com)\n-  \n\n3. three\n\n```go\nx := 1\n```\n---\n```unclosed"

func TestMarshalDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := markdown.Format(sample)
	data, err := examjson.MarshalDocument(doc)
	require.NoError(t, err)

	got, err := examjson.UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestMarshalDocument_WireFormat(t *testing.T) {
	t.Parallel()

	doc := examchat.Document{Blocks: []examchat.Block{
		examchat.Heading{Level: 2, Content: []examchat.Span{examchat.Text{Text: "Hi"}, examchat.StarIcon{}}},
	}}
	data, err := examjson.MarshalDocument(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1), raw["version"])
	blocks := raw["blocks"].([]any)
	require.Len(t, blocks, 1)
	block := blocks[0].(map[string]any)
	assert.Equal(t, "heading", block["type"])
	assert.Equal(t, float64(2), block["level"])
	content := block["content"].([]any)
	assert.Equal(t, "star", content[1].(map[string]any)["type"])
}

func TestMarshalDocument_Empty(t *testing.T) {
	t.Parallel()

	data, err := examjson.MarshalDocument(examchat.Document{})
	require.NoError(t, err)
	got, err := examjson.UnmarshalDocument(data)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestUnmarshalDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{`},
		{name: "unsupported version", data: `{"version":2,"blocks":[]}`},
		{name: "unknown block", data: `{"version":1,"blocks":[{"type":"table"}]}`},
		{name: "unknown span", data: `{"version":1,"blocks":[{"type":"paragraph","content":[{"type":"strike"}]}]}`},
		{name: "heading level out of range", data: `{"version":1,"blocks":[{"type":"heading","level":4}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := examjson.UnmarshalDocument([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads a saved document", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format(sample)
		data, err := examjson.MarshalDocument(doc)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "doc.json")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		got, err := examjson.Load(path)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := examjson.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
