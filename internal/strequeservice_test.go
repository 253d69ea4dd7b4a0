package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/gateway"
	"github.com/teknologkoren/strequekiosk/internal/testutil"
)

type fakeSender struct {
	outcome gateway.Outcome
	calls   int
	uri     string
	token   string
	payload interface{}
}

func (s *fakeSender) Send(ctx context.Context, uri string, payload interface{}, csrfToken string) gateway.Outcome {
	s.calls++
	s.uri = uri
	s.payload = payload
	s.token = csrfToken
	return s.outcome
}

type fakeCelebration struct {
	starts int
}

func (c *fakeCelebration) Start() {
	c.starts++
}

func TestStrequaDoesNotCelebrateFailures(t *testing.T) {
	failures := []error{
		&gateway.TransportError{URI: pathStrequa, Err: errors.New("connection refused")},
		&gateway.ServerError{URI: pathStrequa, Status: 500, Body: "oops"},
		&gateway.ProtocolError{URI: pathStrequa, Body: "oops", Err: errors.New("invalid character")},
	}
	for _, failure := range failures {
		sender := &fakeSender{outcome: gateway.Outcome{Err: failure}}
		cel := &fakeCelebration{}
		s := NewStrequeService(sender, cel, staticConfig{}, testutil.Logger())

		res, err := s.Strequa(context.Background(), 1, 2)
		assert.Nil(t, res)
		require.Error(t, err)
		httpErr, ok := err.(*HTTPError)
		require.True(t, ok)
		assert.Equal(t, 502, httpErr.Status())
		assert.Equal(t, ErrCodeUpstreamFailed, httpErr.ErrorCode())
		assert.Equal(t, 1, sender.calls, "failures must not be retried")
		assert.Equal(t, 0, cel.starts)
	}
}

func TestTokenFromContextWins(t *testing.T) {
	sender := &fakeSender{outcome: gateway.Outcome{Err: &gateway.ServerError{Status: 403}}}
	s := NewStrequeService(sender, &fakeCelebration{}, staticConfig{token: "fallback"}, testutil.Logger())

	ctx := context.WithValue(context.Background(), ctxhelper.KeyCSRFToken, "page")
	s.VoidStreque(ctx, 3)
	assert.Equal(t, "page", sender.token)
	assert.Equal(t, pathVoidStreque, sender.uri)

	s.VoidTransaction(context.Background(), 3)
	assert.Equal(t, "fallback", sender.token)
	assert.Equal(t, pathVoidTransaction, sender.uri)
}

func TestUpstreamErrorDetails(t *testing.T) {
	logger := testutil.Logger()
	err := upstreamError(logger, &gateway.ServerError{Status: 400, Body: "bad"})
	assert.Equal(t, upstreamFailure{Kind: "server", Status: 400, Body: "bad"}, err.Data())
	assert.Equal(t, MsgReloadAndRetry, err.Error())

	err = upstreamError(logger, &gateway.TransportError{Err: errors.New("timeout")})
	assert.Equal(t, upstreamFailure{Kind: "transport"}, err.Data())
}
