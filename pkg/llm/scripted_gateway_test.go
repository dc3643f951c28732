package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTarget struct {
	Foo string `json:"foo"`
}

func TestScriptedGatewayConsumesInOrder(t *testing.T) {
	gw := NewScriptedGateway().
		AddValue(scriptedTarget{Foo: "first"}).
		AddValue(scriptedTarget{Foo: "second"})

	var out scriptedTarget
	require.NoError(t, gw.CallJSON(context.Background(), "p", &out, time.Second))
	assert.Equal(t, "first", out.Foo)

	require.NoError(t, gw.CallJSON(context.Background(), "p", &out, time.Second))
	assert.Equal(t, "second", out.Foo)

	assert.Equal(t, 2, gw.CallCount())
}

func TestScriptedGatewayReturnsScriptedError(t *testing.T) {
	wantErr := &Error{Kind: KindRefused, Message: "nope"}
	gw := NewScriptedGateway().AddError(wantErr)

	var out scriptedTarget
	err := gw.CallJSON(context.Background(), "p", &out, time.Second)
	assert.Same(t, wantErr, err)
}

func TestScriptedGatewayExhaustedReturnsTransportError(t *testing.T) {
	gw := NewScriptedGateway()

	var out scriptedTarget
	err := gw.CallJSON(context.Background(), "p", &out, time.Second)
	require.Error(t, err)
	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, KindTransport, llmErr.Kind)
}

func TestScriptedGatewayCancelledContext(t *testing.T) {
	gw := NewScriptedGateway().AddValue(scriptedTarget{Foo: "unreachable"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out scriptedTarget
	err := gw.CallJSON(ctx, "p", &out, time.Second)
	require.Error(t, err)
	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, KindTransport, llmErr.Kind)
	assert.Equal(t, 1, gw.CallCount())
}

func TestScriptedGatewayMismatchedSchemaIsParseError(t *testing.T) {
	gw := NewScriptedGateway().AddValue("not an object")

	var out scriptedTarget
	err := gw.CallJSON(context.Background(), "p", &out, time.Second)
	require.Error(t, err)
	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, KindParse, llmErr.Kind)
}
