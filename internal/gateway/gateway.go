// Package gateway issues the state changing POST requests of the kiosk against the upstream tally server
package gateway

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/log"
)

const (
	// ContentType is the content type sent with every request
	ContentType = "application/json; charset=UTF-8"
	// HeaderCSRFToken is the header carrying the anti-forgery token
	HeaderCSRFToken = "X-CSRFToken"
)

// DefaultTimeout is the request timeout used unless another one is configured
const DefaultTimeout = 30 * time.Second

// ErrEmptyURI is the cause of the TransportError returned when Send is called without target
var ErrEmptyURI = errors.New("empty request URI")

// Outcome is the result of a single request. A nil Err means success and Value holds the decoded JSON response.
// Otherwise Err is one of *TransportError, *ServerError or *ProtocolError and Value is nil.
type Outcome struct {
	Value interface{}
	Err   error
	// The raw response body - empty on transport errors
	raw []byte
}

// OK reports whether the outcome is a success
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Decode unmarshals the successful response body into v
func (o Outcome) Decode(v interface{}) error {
	if o.Err != nil {
		return o.Err
	}
	return json.Unmarshal(o.raw, v)
}

// Option configures a Gateway
type Option func(*Gateway)

// WithHTTPClient replaces the http.Client used for the requests
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithTimeout limits the duration of each request. A zero timeout keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.client = &http.Client{Timeout: d}
		}
	}
}

// WithHeader adds a static header that is sent along with every request - used for session cookies or API keys
func WithHeader(key, value string) Option {
	return func(g *Gateway) {
		if value != "" {
			g.headers = append(g.headers, httptransport.SetRequestHeader(key, value))
		}
	}
}

// Gateway sends JSON payloads via POST and reports the outcome. It holds no per-request state, so concurrent calls
// are safe. There is no retry, no deduplication and no cancellation of superseded requests: a slow response may
// still arrive after a more recent one.
type Gateway struct {
	base    *url.URL
	client  *http.Client
	headers []httptransport.RequestFunc
	logger  *logrus.Entry
}

// New creates a gateway resolving relative URIs against baseURL
func New(baseURL string, logger *logrus.Entry, opts ...Option) (*Gateway, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "New: invalid base URL '%s'", baseURL)
	}
	g := &Gateway{
		base:   base,
		client: &http.Client{Timeout: DefaultTimeout},
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Send posts the payload as JSON to uri with the given CSRF token and blocks until the outcome is known
func (g *Gateway) Send(ctx context.Context, uri string, payload interface{}, csrfToken string) Outcome {
	logger := g.logger.WithField(log.FldURI, uri)
	if uri == "" {
		return Outcome{Err: &TransportError{URI: uri, Err: ErrEmptyURI}}
	}
	tgt, err := g.base.Parse(uri)
	if err != nil {
		return Outcome{Err: &TransportError{URI: uri, Err: errors.Wrap(err, "Send: cannot resolve URI")}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Err: &TransportError{URI: uri, Err: errors.Wrap(err, "Send: cannot serialize payload")}}
	}
	started := time.Now()
	res, err := g.endpoint(tgt, uri, csrfToken)(ctx, body)
	logger = logger.WithField(log.FldDuration, time.Since(started))
	if err != nil {
		switch err.(type) {
		case *ServerError, *ProtocolError:
		default:
			err = &TransportError{URI: uri, Err: err}
		}
		logger.WithError(err).Warn("Request failed")
		return Outcome{Err: err}
	}
	logger.Debug("Request succeeded")
	return res.(Outcome)
}

// SendAsync runs Send in the background. The returned channel delivers exactly one outcome and is closed afterwards.
func (g *Gateway) SendAsync(ctx context.Context, uri string, payload interface{}, csrfToken string) <-chan Outcome {
	c := make(chan Outcome, 1)
	go func() {
		defer close(c)
		c <- g.Send(ctx, uri, payload, csrfToken)
	}()
	return c
}

// endpoint builds the go-kit client endpoint for a single request
func (g *Gateway) endpoint(tgt *url.URL, uri, csrfToken string) endpoint.Endpoint {
	before := append([]httptransport.RequestFunc{
		httptransport.SetRequestHeader("Content-Type", ContentType),
		httptransport.SetRequestHeader(HeaderCSRFToken, csrfToken),
	}, g.headers...)
	return httptransport.NewClient(
		http.MethodPost,
		tgt,
		encodeRawJSON,
		makeOutcomeDecoder(uri),
		httptransport.SetClient(g.client),
		httptransport.ClientBefore(before...),
	).Endpoint()
}

// encodeRawJSON writes the already serialized payload into the request body
func encodeRawJSON(_ context.Context, r *http.Request, request interface{}) error {
	body := request.([]byte)
	r.ContentLength = int64(len(body))
	r.Body = ioutil.NopCloser(bytes.NewReader(body))
	return nil
}

// makeOutcomeDecoder returns a decoder that sorts the response into success, server or protocol errors
func makeOutcomeDecoder(uri string) httptransport.DecodeResponseFunc {
	return func(_ context.Context, r *http.Response) (interface{}, error) {
		raw, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read response body")
		}
		if r.StatusCode < 200 || r.StatusCode >= 400 {
			return nil, &ServerError{URI: uri, Status: r.StatusCode, Body: string(raw)}
		}
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, &ProtocolError{URI: uri, Body: string(raw), Err: err}
		}
		return Outcome{Value: value, raw: raw}, nil
	}
}
