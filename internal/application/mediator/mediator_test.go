package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q := request.(*pingQuery)
	return "pong:" + q.Value, nil
}

func TestMediator_SendRoutesByType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
}

func TestMediator_DuplicateRegistrationFails(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	err := mediator.RegisterHandler[*pingQuery](m, pingHandler{})

	assert.Error(t, err)
}

func TestMediator_UnknownRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name)
			return next(ctx, req)
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}
