package internal

import (
	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"

	"github.com/teknologkoren/strequekiosk/internal/drinks"
	"github.com/teknologkoren/strequekiosk/internal/models"
)

// StrequeEndpoints is a collection of endpoints to the tally service
type StrequeEndpoints struct {
	Strequa         endpoint.Endpoint
	VoidStreque     endpoint.Endpoint
	VoidTransaction endpoint.Endpoint
}

// RosterEndpoints is a collection of endpoints for the user and quote lists
type RosterEndpoints struct {
	FilterUsers   endpoint.Endpoint
	ReplaceGroups endpoint.Endpoint
	FilterQuotes  endpoint.Endpoint
	ReplaceQuotes endpoint.Endpoint
}

// MiscEndpoints is a collection of endpoints that do not need a service
type MiscEndpoints struct {
	Celebration  endpoint.Endpoint
	Standardglas endpoint.Endpoint
}

// The base for all responses which always contains an "ok" property to show if the call was successful and a
// data element containing the result of the request
type basicResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
}

// A request for a filtered list
type filterRequest struct {
	Filter string
}

// A request for calculating standard glasses
type standardglasRequest struct {
	VolumeCl float64
	Percent  float64
}

type celebrationResponse struct {
	Visible bool   `json:"visible"`
	Cycles  uint64 `json:"cycles"`
}

type standardglasResponse struct {
	Standardglas float64 `json:"standardglas"`
}

// -- Tally ------------------------------------------------------------------------------------------------------------

// MakeStrequeEndpoints creates the endpoints needed to use the tally service
func MakeStrequeEndpoints(s StrequeService) StrequeEndpoints {
	return StrequeEndpoints{
		Strequa:         LogCalls("Strequa")(MakeStrequaEndpoint(s)),
		VoidStreque:     LogCalls("VoidStreque")(MakeVoidStrequeEndpoint(s)),
		VoidTransaction: LogCalls("VoidTransaction")(MakeVoidTransactionEndpoint(s)),
	}
}

// MakeStrequaEndpoint returns an endpoint calling the Strequa method of the StrequeService
func MakeStrequaEndpoint(s StrequeService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(models.StrequeRequest)
		res, err := s.Strequa(ctx, req.UserID, req.ArticleID)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, res}, nil
	}
}

// MakeVoidStrequeEndpoint returns an endpoint calling the VoidStreque method of the StrequeService
func MakeVoidStrequeEndpoint(s StrequeService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(models.VoidStrequeRequest)
		res, err := s.VoidStreque(ctx, req.StrequeID)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, res}, nil
	}
}

// MakeVoidTransactionEndpoint returns an endpoint calling the VoidTransaction method of the StrequeService
func MakeVoidTransactionEndpoint(s StrequeService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(models.VoidTransactionRequest)
		res, err := s.VoidTransaction(ctx, req.TransactionID)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, res}, nil
	}
}

// -- Roster -----------------------------------------------------------------------------------------------------------

// MakeRosterEndpoints creates the endpoints needed to use the roster service
func MakeRosterEndpoints(s RosterService) RosterEndpoints {
	return RosterEndpoints{
		FilterUsers:   MakeFilterUsersEndpoint(s),
		ReplaceGroups: LogCalls("ReplaceGroups")(MakeReplaceGroupsEndpoint(s)),
		FilterQuotes:  MakeFilterQuotesEndpoint(s),
		ReplaceQuotes: LogCalls("ReplaceQuotes")(MakeReplaceQuotesEndpoint(s)),
	}
}

// MakeFilterUsersEndpoint returns an endpoint calling the FilterUsers method of the RosterService
func MakeFilterUsersEndpoint(s RosterService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		res, err := s.FilterUsers(ctx, request.(filterRequest).Filter)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, res}, nil
	}
}

// MakeReplaceGroupsEndpoint returns an endpoint calling the ReplaceGroups method of the RosterService
func MakeReplaceGroupsEndpoint(s RosterService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		if err := s.ReplaceGroups(ctx, request.([]models.Group)); err != nil {
			return nil, err
		}
		return basicResponse{true, nil}, nil
	}
}

// MakeFilterQuotesEndpoint returns an endpoint calling the FilterQuotes method of the RosterService
func MakeFilterQuotesEndpoint(s RosterService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		res, err := s.FilterQuotes(ctx, request.(filterRequest).Filter)
		if err != nil {
			return nil, err
		}
		return basicResponse{true, res}, nil
	}
}

// MakeReplaceQuotesEndpoint returns an endpoint calling the ReplaceQuotes method of the RosterService
func MakeReplaceQuotesEndpoint(s RosterService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		if err := s.ReplaceQuotes(ctx, request.([]models.Quote)); err != nil {
			return nil, err
		}
		return basicResponse{true, nil}, nil
	}
}

// -- Misc -------------------------------------------------------------------------------------------------------------

// MakeMiscEndpoints creates the endpoints for the celebration state and the standard glass calculator
func MakeMiscEndpoints(c CelebrationState) MiscEndpoints {
	return MiscEndpoints{
		Celebration: func(ctx context.Context, request interface{}) (interface{}, error) {
			return basicResponse{true, celebrationResponse{c.Visible(), c.Cycles()}}, nil
		},
		Standardglas: func(ctx context.Context, request interface{}) (interface{}, error) {
			req := request.(standardglasRequest)
			return basicResponse{true, standardglasResponse{drinks.FromCentilitres(req.VolumeCl, req.Percent)}}, nil
		},
	}
}
