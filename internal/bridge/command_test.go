package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Text  string   `mapstructure:"text"`
	Count uint32   `mapstructure:"count"`
	Tags  []string `mapstructure:"tags"`
}

func (r echoRequest) Validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

func TestBaseCommand_DecodesArgs(t *testing.T) {
	var got echoRequest
	cmd := NewBaseCommand("echo", "Echoes its input", func(ctx context.Context, req echoRequest) (echoRequest, error) {
		got = req
		return req, nil
	})

	// Numbers arrive as float64 and arrays as []any after JSON decoding
	resp, err := cmd.Execute(context.Background(), map[string]any{
		"text":  "hi",
		"count": float64(3),
		"tags":  []any{"a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, echoRequest{Text: "hi", Count: 3, Tags: []string{"a", "b"}}, got)
	assert.Equal(t, got, resp)
	assert.Equal(t, "echo", cmd.Name())
	assert.Equal(t, "Echoes its input", cmd.Description())
}

func TestBaseCommand_InvalidArgs(t *testing.T) {
	called := false
	cmd := NewBaseCommand("echo", "", func(ctx context.Context, req echoRequest) (echoRequest, error) {
		called = true
		return req, nil
	})

	_, err := cmd.Execute(context.Background(), map[string]any{"text": []any{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid arguments")
	assert.False(t, called)
}

func TestBaseCommand_Validates(t *testing.T) {
	called := false
	cmd := NewBaseCommand("echo", "", func(ctx context.Context, req echoRequest) (echoRequest, error) {
		called = true
		return req, nil
	})

	_, err := cmd.Execute(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "echo validation failed: text is required", err.Error())
	assert.False(t, called)
}

func TestBaseCommand_ExecutorErrorUnchanged(t *testing.T) {
	want := errors.New("rg: unclosed group")
	cmd := NewBaseCommand("echo", "", func(ctx context.Context, req echoRequest) (echoRequest, error) {
		return echoRequest{}, want
	})

	_, err := cmd.Execute(context.Background(), map[string]any{"text": "x"})
	assert.Same(t, want, err)
}
