package internal

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/gateway"
	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
)

const (
	// Upstream paths of the tally server
	pathStrequa         = "/strequa"
	pathVoidStreque     = "/void"
	pathVoidTransaction = "/admin/transactions/void"
)

// Sender posts a JSON payload to the tally server
type Sender interface {
	Send(ctx context.Context, uri string, payload interface{}, csrfToken string) gateway.Outcome
}

// Celebration is started whenever a tally succeeded
type Celebration interface {
	Start()
}

// StrequeService records and voids tallies on the tally server
type StrequeService interface {
	// Strequa puts an article on the tab of the given user
	Strequa(ctx context.Context, userID, articleID uint) (*models.StrequeResult, error)
	// VoidStreque reverts a streque
	VoidStreque(ctx context.Context, strequeID uint) (*models.VoidStrequeResult, error)
	// VoidTransaction reverts any kind of transaction - admin only on the tally server
	VoidTransaction(ctx context.Context, transactionID uint) (*models.VoidTransactionResult, error)
}

// -- StrequeService implementation ------------------------------------------------------------------------------------

type strequeService struct {
	sender      Sender
	celebration Celebration
	cs          ConfigService
	logger      *logrus.Entry
}

// NewStrequeService creates a new StrequeService sending its requests through the given sender
func NewStrequeService(sender Sender, celebration Celebration, cs ConfigService, logger *logrus.Entry) StrequeService {
	return &strequeService{sender, celebration, cs, logger}
}

// Strequa puts an article on the tab of the given user
func (s *strequeService) Strequa(ctx context.Context, userID, articleID uint) (*models.StrequeResult, error) {
	logger := s.logger.WithFields(logrus.Fields{log.FldUser: userID, log.FldArticle: articleID})
	var res models.StrequeResult
	req := models.StrequeRequest{UserID: userID, ArticleID: articleID}
	if err := s.post(ctx, logger, pathStrequa, req, &res); err != nil {
		return nil, err
	}
	logger.WithField("value", res.Value).Info("Streque added")
	s.celebration.Start()
	return &res, nil
}

// VoidStreque reverts a streque
func (s *strequeService) VoidStreque(ctx context.Context, strequeID uint) (*models.VoidStrequeResult, error) {
	logger := s.logger.WithField(log.FldStreque, strequeID)
	var res models.VoidStrequeResult
	if err := s.post(ctx, logger, pathVoidStreque, models.VoidStrequeRequest{StrequeID: strequeID}, &res); err != nil {
		return nil, err
	}
	logger.Info("Streque voided")
	return &res, nil
}

// VoidTransaction reverts any kind of transaction
func (s *strequeService) VoidTransaction(
	ctx context.Context,
	transactionID uint,
) (*models.VoidTransactionResult, error) {
	logger := s.logger.WithField(log.FldTransaction, transactionID)
	var res models.VoidTransactionResult
	req := models.VoidTransactionRequest{TransactionID: transactionID}
	if err := s.post(ctx, logger, pathVoidTransaction, req, &res); err != nil {
		return nil, err
	}
	logger.Info("Transaction voided")
	return &res, nil
}

// post sends the payload and decodes a successful response into res
func (s *strequeService) post(ctx context.Context, logger *logrus.Entry, uri string, payload, res interface{}) error {
	token := ctxhelper.CSRFToken(ctx)
	if token == "" {
		token = s.cs.FallbackCSRFToken()
	}
	out := s.sender.Send(ctx, uri, payload, token)
	if out.Err != nil {
		return upstreamError(logger, out.Err)
	}
	if err := out.Decode(res); err != nil {
		// Valid JSON, but not what the tally server usually answers
		err = errors.Wrap(err, "post: unexpected response")
		return upstreamError(logger, &gateway.ProtocolError{URI: uri, Err: err})
	}
	return nil
}

// upstreamFailure describes a failed upstream request to the browser
type upstreamFailure struct {
	Kind   string `json:"kind"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

// upstreamError logs the failure and converts it into the error returned to the browser
func upstreamError(logger *logrus.Entry, err error) *HTTPError {
	var detail upstreamFailure
	switch e := err.(type) {
	case *gateway.ServerError:
		detail = upstreamFailure{Kind: "server", Status: e.Status, Body: e.Body}
		logger = logger.WithField(log.FldStatus, e.Status)
	case *gateway.ProtocolError:
		detail = upstreamFailure{Kind: "protocol", Body: e.Body}
	default:
		detail = upstreamFailure{Kind: "transport"}
	}
	logger.WithError(err).Error("Tally server request failed")
	return MakeErrorWithData(http.StatusBadGateway, ErrCodeUpstreamFailed, MsgReloadAndRetry, detail)
}
