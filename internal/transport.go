package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/gateway"
	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/models"
)

const (
	apiBasePath = "/api"
)

// Defines an error that defines the HTTP status that should be returned
type httpStatuser interface {
	Status() int
}

// Defines an error that returns a machine-readable error code
type errorCoder interface {
	ErrorCode() string
}

// Defines an error that contains a data field with additional information
type dataBearer interface {
	Data() interface{}
}

type errorResponse struct {
	basicResponse
	// The error code
	Error   string      `json:"error"`
	Message string      `json:"errorMessage"`
	Details interface{} `json:"errorDetails,omitempty"`
}

// binding ties a route to the endpoint handling it and the decoder building the endpoint's request
type binding struct {
	method string
	path   string
	ep     endpoint.Endpoint
	dec    httptransport.DecodeRequestFunc
}

// bindings returns the full list of API routes
func bindings(se StrequeEndpoints, re RosterEndpoints, me MiscEndpoints) []binding {
	return []binding{
		{http.MethodPost, "/strequa", se.Strequa, decodeStrequeRequest},
		{http.MethodPost, "/void", se.VoidStreque, decodeVoidStrequeRequest},
		{http.MethodPost, "/transactions/void", se.VoidTransaction, decodeVoidTransactionRequest},
		{http.MethodGet, "/users", re.FilterUsers, decodeFilterRequest},
		{http.MethodPut, "/users", re.ReplaceGroups, decodeGroups},
		{http.MethodGet, "/quotes", re.FilterQuotes, decodeFilterRequest},
		{http.MethodPut, "/quotes", re.ReplaceQuotes, decodeQuotes},
		{http.MethodGet, "/celebration", me.Celebration, decodeNilRequest},
		{http.MethodGet, "/standardglas", me.Standardglas, decodeStandardglasRequest},
	}
}

// MakeHTTPHandler creates the main HTTP handler for the kiosk
func MakeHTTPHandler(
	ss StrequeService,
	rs RosterService,
	cel CelebrationState,
	logger *logrus.Entry,
) http.Handler {
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
		httptransport.ServerBefore(makeContextInjector(logger)),
		httptransport.ServerBefore(extractCSRFToken),
	}

	for _, b := range bindings(MakeStrequeEndpoints(ss), MakeRosterEndpoints(rs), MakeMiscEndpoints(cel)) {
		r.Methods(b.method).Path(apiBasePath + b.path).Handler(httptransport.NewServer(
			b.ep,
			b.dec,
			encodeJSONResponse,
			options...,
		))
	}

	// Liveness check - used by the systemd watchdog
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	return r
}

// decodeNilRequest is used for requests that do not need any input
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// decodeJSONBody decodes the request body into v
func decodeJSONBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return MakeError(
			http.StatusBadRequest,
			ErrCodeIllegalJSON,
			fmt.Sprintf("Failed to decode JSON body: %v", err),
		)
	}
	return nil
}

func decodeStrequeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.StrequeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	if req.UserID == 0 {
		return nil, ErrRequiredField("user_id")
	}
	if req.ArticleID == 0 {
		return nil, ErrRequiredField("article_id")
	}
	return req, nil
}

func decodeVoidStrequeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.VoidStrequeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	if req.StrequeID == 0 {
		return nil, ErrRequiredField("streque_id")
	}
	return req, nil
}

func decodeVoidTransactionRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.VoidTransactionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	if req.TransactionID == 0 {
		return nil, ErrRequiredField("transaction_id")
	}
	return req, nil
}

// decodeFilterRequest reads the filter query from the "filter" parameter. A missing parameter equals an empty filter.
func decodeFilterRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return filterRequest{Filter: r.URL.Query().Get("filter")}, nil
}

func decodeGroups(_ context.Context, r *http.Request) (interface{}, error) {
	groups := []models.Group{}
	if err := decodeJSONBody(r, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func decodeQuotes(_ context.Context, r *http.Request) (interface{}, error) {
	quotes := []models.Quote{}
	if err := decodeJSONBody(r, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// getFloatFromQuery is a helper function that reads a non-negative number from the given query parameter
func getFloatFromQuery(name string, r *http.Request) (float64, error) {
	errmsg := fmt.Sprintf("Value for '%s' is no valid non-negative number", name)
	str := strings.TrimSpace(r.URL.Query().Get(name))
	if str == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(str, ",", ".", 1), 64)
	if err != nil || v < 0 {
		return 0, MakeError(http.StatusBadRequest, ErrCodeIllegalValue, errmsg)
	}
	return v, nil
}

func decodeStandardglasRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vol, err := getFloatFromQuery("cl", r)
	if err != nil {
		return nil, err
	}
	percent, err := getFloatFromQuery("percent", r)
	if err != nil {
		return nil, err
	}
	if percent > 100 {
		return nil, MakeError(http.StatusBadRequest, ErrCodeIllegalValue, "Alcohol content cannot exceed 100%")
	}
	return standardglasRequest{VolumeCl: vol, Percent: percent}, nil
}

// Encodes a typical JSON response
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// Builds an error response based on the incoming error
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if st, ok := err.(httpStatuser); ok {
		w.WriteHeader(st.Status())
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	ret := errorResponse{
		basicResponse: basicResponse{false, nil},
		Message:       err.Error(),
		Error:         ErrCodeUnknown,
	}
	if cd, ok := err.(errorCoder); ok {
		ret.Error = cd.ErrorCode()
	}
	if db, ok := err.(dataBearer); ok {
		if data := db.Data(); data != nil {
			if err, ok := data.(error); ok {
				ret.Details = err.Error()
			} else {
				ret.Details = data
			}
		}
	}
	json.NewEncoder(w).Encode(&ret)
}

// extractCSRFToken stores the CSRF token sent by the browser inside the context. The browser reads it from the page
// it has been served by the tally server.
func extractCSRFToken(ctx context.Context, r *http.Request) context.Context {
	token := strings.TrimSpace(r.Header.Get(gateway.HeaderCSRFToken))
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxhelper.KeyCSRFToken, token)
}

func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		return context.WithValue(ctx, ctxhelper.KeyLogger, logger.WithFields(logrus.Fields{
			log.FldIP:   r.RemoteAddr,
			log.FldPath: r.URL.Path,
		}))
	}
}
