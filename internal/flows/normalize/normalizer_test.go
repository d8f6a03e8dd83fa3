package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	body, err := Decode([]byte(raw))
	require.NoError(t, err)
	return body
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     string
		strategy string
		found    bool
	}{
		{
			name:     "nested output",
			body:     `{"outputs":[{"outputs":[{"results":{"message":{"text":"Diabetes is..."}}}]}]}`,
			want:     "Diabetes is...",
			strategy: "nested-output",
			found:    true,
		},
		{
			name:     "nested output skips non-matching inner entries",
			body:     `{"outputs":[{"outputs":["noise",{"results":{}},{"results":{"message":{"text":""}}},{"results":{"message":{"text":"second"}}}]}]}`,
			want:     "second",
			strategy: "nested-output",
			found:    true,
		},
		{
			name:     "direct output",
			body:     `{"outputs":[{"results":{"message":{"text":"direct"}}}]}`,
			want:     "direct",
			strategy: "direct-output",
			found:    true,
		},
		{
			name:     "scan outputs message",
			body:     `{"outputs":[{"foo":1},{"message":"from scan"}]}`,
			want:     "from scan",
			strategy: "scan-outputs",
			found:    true,
		},
		{
			name:     "scan outputs text",
			body:     `{"outputs":[{"text":"scanned text"}]}`,
			want:     "scanned text",
			strategy: "scan-outputs",
			found:    true,
		},
		{
			name:     "message string",
			body:     `{"message":"plain message"}`,
			want:     "plain message",
			strategy: "message",
			found:    true,
		},
		{
			name:     "message text object",
			body:     `{"message":{"text":"object text"}}`,
			want:     "object text",
			strategy: "message",
			found:    true,
		},
		{
			name:     "message data text",
			body:     `{"message":{"data":{"text":"deep text"}}}`,
			want:     "deep text",
			strategy: "message",
			found:    true,
		},
		{
			name:     "result string",
			body:     `{"result":"a result"}`,
			want:     "a result",
			strategy: "result",
			found:    true,
		},
		{
			name:     "result message",
			body:     `{"result":{"message":"result message"}}`,
			want:     "result message",
			strategy: "result",
			found:    true,
		},
		{
			name:     "text field",
			body:     `{"text":"just text"}`,
			want:     "just text",
			strategy: "text",
			found:    true,
		},
		{
			name:     "content field",
			body:     `{"content":"some content"}`,
			want:     "some content",
			strategy: "content",
			found:    true,
		},
		{
			name:  "no match",
			body:  `{"status":"ok","data":[1,2,3]}`,
			found: false,
		},
		{
			name:  "empty strings never match",
			body:  `{"message":"","text":"","content":""}`,
			found: false,
		},
		{
			name:  "outputs with wrong type",
			body:  `{"outputs":"not a list"}`,
			found: false,
		},
		{
			name:     "non-object first output falls through",
			body:     `{"outputs":[42],"text":"fallback"}`,
			want:     "fallback",
			strategy: "text",
			found:    true,
		},
		{
			name:  "non-object body",
			body:  `["a","b"]`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, name, ok := Match(decode(t, tt.body))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, msg)
			assert.Equal(t, tt.strategy, name)
		})
	}
}

func TestExtractPriority(t *testing.T) {
	t.Run("nested output beats top-level text", func(t *testing.T) {
		body := decode(t, `{
			"text": "top-level",
			"outputs": [{"outputs": [{"results": {"message": {"text": "nested"}}}]}]
		}`)

		msg, ok := Extract(body)
		require.True(t, ok)
		assert.Equal(t, "nested", msg)
	})

	t.Run("nested output beats direct output", func(t *testing.T) {
		body := decode(t, `{"outputs":[{
			"results": {"message": {"text": "direct"}},
			"outputs": [{"results": {"message": {"text": "nested"}}}]
		}]}`)

		msg, ok := Extract(body)
		require.True(t, ok)
		assert.Equal(t, "nested", msg)
	})

	t.Run("message beats result", func(t *testing.T) {
		body := decode(t, `{"result":"result","message":"message"}`)

		msg, ok := Extract(body)
		require.True(t, ok)
		assert.Equal(t, "message", msg)
	})
}

func TestExtractIsPure(t *testing.T) {
	body := decode(t, `{"outputs":[{"outputs":[{"results":{"message":{"text":"same"}}}]}]}`)

	first, ok1 := Extract(body)
	second, ok2 := Extract(body)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, decode(t, `{"outputs":[{"outputs":[{"results":{"message":{"text":"same"}}}]}]}`), body)
}

func TestExtractNil(t *testing.T) {
	msg, ok := Extract(nil)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestExtractJSON(t *testing.T) {
	msg, ok := ExtractJSON([]byte(`{"content":"hello"}`))
	assert.True(t, ok)
	assert.Equal(t, "hello", msg)

	_, ok = ExtractJSON([]byte("not json"))
	assert.False(t, ok)
}

func TestDecodeKeepsLargeIntegers(t *testing.T) {
	body, err := Decode([]byte(`{"job_id":12345678901234567890,"trace":9007199254740993,"ratio":0.5}`))
	require.NoError(t, err)

	obj, ok := body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567890"), obj["job_id"])
	assert.Equal(t, json.Number("9007199254740993"), obj["trace"])
	assert.Equal(t, json.Number("0.5"), obj["ratio"])

	_, err = Decode([]byte("{"))
	assert.Error(t, err)
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, []string{
		"nested-output", "direct-output", "scan-outputs",
		"message", "result", "text", "content",
	}, Strategies())
}
