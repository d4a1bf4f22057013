package transfers

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	transfersv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1/transfersv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"
)

// TransferApp defines what the service layer needs from the transfers application
type TransferApp interface {
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*models.Transfer, error)
	CancelTransfer(ctx context.Context, req CancelTransferRequest) error
	BuyPlayer(ctx context.Context, req BuyPlayerRequest) (*PurchaseResult, error)
	ListTransfers(ctx context.Context, filter ListTransfersFilter) (*ListTransfersResult, error)
}

// Service implements the TransferService connect interface
type Service struct {
	app TransferApp
}

// NewService creates a new transfers connect service
func NewService(app TransferApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the TransferServiceHandler interface
var _ transfersv1connect.TransferServiceHandler = (*Service)(nil)

// ListTransfers searches pending listings
func (s *Service) ListTransfers(ctx context.Context, req *connect.Request[transfersv1.ListTransfersRequest]) (*connect.Response[transfersv1.ListTransfersResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	filter := ListTransfersFilter{
		TeamName:   req.Msg.TeamName,
		PlayerName: req.Msg.PlayerName,
		Limit:      int(req.Msg.Limit),
		Page:       int(req.Msg.Page),
	}
	var err error
	if filter.MinPrice, err = parseOptionalDecimal(req.Msg.MinPrice, "min_price"); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parseOptionalDecimal(req.Msg.MaxPrice, "max_price"); err != nil {
		return nil, err
	}

	result, err := s.app.ListTransfers(ctx, filter)
	if err != nil {
		return nil, toConnectError(err)
	}

	listings := make([]*transfersv1.TransferListing, len(result.Transfers))
	for i := range result.Transfers {
		listings[i] = listingToProto(&result.Transfers[i])
	}
	return connect.NewResponse(&transfersv1.ListTransfersResponse{
		Transfers: listings,
		Total:     int32(result.Total),
		Limit:     int32(result.Limit),
		Page:      int32(result.Page),
	}), nil
}

// CreateTransfer lists a player of the caller's team
func (s *Service) CreateTransfer(ctx context.Context, req *connect.Request[transfersv1.CreateTransferRequest]) (*connect.Response[transfersv1.CreateTransferResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	teamID, err := parseID(req.Msg.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	playerID, err := parseID(req.Msg.PlayerId, "player_id")
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(req.Msg.Price)
	if err != nil {
		return nil, toConnectError(rejected(RuleInvalidPrice, "price %q is not a decimal number", req.Msg.Price))
	}

	transfer, err := s.app.CreateTransfer(ctx, CreateTransferRequest{
		UserID:   userID,
		TeamID:   teamID,
		PlayerID: playerID,
		Price:    price,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&transfersv1.CreateTransferResponse{
		Transfer: transferToProto(transfer),
	}), nil
}

// CancelTransfer removes a pending listing of the caller's team
func (s *Service) CancelTransfer(ctx context.Context, req *connect.Request[transfersv1.CancelTransferRequest]) (*connect.Response[transfersv1.CancelTransferResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	teamID, err := parseID(req.Msg.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	transferID, err := parseID(req.Msg.TransferId, "transfer_id")
	if err != nil {
		return nil, err
	}

	err = s.app.CancelTransfer(ctx, CancelTransferRequest{
		UserID:     userID,
		TeamID:     teamID,
		TransferID: transferID,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&transfersv1.CancelTransferResponse{
		Success: true,
	}), nil
}

// BuyPlayer purchases a listing for the caller's team
func (s *Service) BuyPlayer(ctx context.Context, req *connect.Request[transfersv1.BuyPlayerRequest]) (*connect.Response[transfersv1.BuyPlayerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	teamID, err := parseID(req.Msg.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	transferID, err := parseID(req.Msg.TransferId, "transfer_id")
	if err != nil {
		return nil, err
	}

	result, err := s.app.BuyPlayer(ctx, BuyPlayerRequest{
		UserID:     userID,
		TeamID:     teamID,
		TransferID: transferID,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&transfersv1.BuyPlayerResponse{
		TransferId:    result.TransferID.String(),
		PlayerId:      result.PlayerID.String(),
		PurchasePrice: result.PurchasePrice.StringFixed(4),
		BuyerTeamId:   result.BuyerTeamID.String(),
		SellerTeamId:  result.SellerTeamID.String(),
		CompletedAt:   result.CompletedAt.Format(time.RFC3339Nano),
	}), nil
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, toConnectError(invalidRequest("%s must be a uuid", field))
	}
	return id, nil
}

func parseOptionalDecimal(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, toConnectError(invalidRequest("%s must be a decimal number", field))
	}
	return &d, nil
}

// toConnectError maps a market error onto a connect code. The violated rule,
// if any, is attached as a structpb detail.
func toConnectError(err error) *connect.Error {
	var marketErr *Error
	if !errors.As(err, &marketErr) {
		log.Error().Err(err).Msg("Unclassified transfer error")
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}

	code := connect.CodeInternal
	msg := marketErr.Message
	switch {
	case errors.Is(err, ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, ErrRejected):
		code = connect.CodeFailedPrecondition
		if marketErr.Rule == RuleInvalidRequest || marketErr.Rule == RuleInvalidPrice {
			code = connect.CodeInvalidArgument
		}
	case errors.Is(err, ErrConflict):
		code = connect.CodeUnavailable
	default:
		msg = "internal error"
	}

	connectErr := connect.NewError(code, errors.New(msg))
	if marketErr.Rule != "" {
		info, err := structpb.NewStruct(map[string]any{"rule": string(marketErr.Rule)})
		if err == nil {
			if detail, err := connect.NewErrorDetail(info); err == nil {
				connectErr.AddDetail(detail)
			}
		}
	}
	return connectErr
}

// RuleFromConnectError extracts the violated rule from a connect error built by this service.
func RuleFromConnectError(err error) Rule {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	for _, detail := range connectErr.Details() {
		value, err := detail.Value()
		if err != nil {
			continue
		}
		if info, ok := value.(*structpb.Struct); ok {
			if rule := info.GetFields()["rule"].GetStringValue(); rule != "" {
				return Rule(rule)
			}
		}
	}
	return ""
}

// Conversion methods between the app models and wire messages

func transferToProto(t *models.Transfer) *transfersv1.Transfer {
	msg := &transfersv1.Transfer{
		Id:        t.ID.String(),
		PlayerId:  t.PlayerID.String(),
		TeamId:    t.TeamID.String(),
		Price:     t.Price.StringFixed(2),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
	}
	if t.BuyerTeamID != nil {
		msg.BuyerTeamId = t.BuyerTeamID.String()
	}
	if t.CompletedAt != nil {
		msg.CompletedAt = t.CompletedAt.Format(time.RFC3339Nano)
	}
	return msg
}

func listingToProto(l *models.TransferListing) *transfersv1.TransferListing {
	return &transfersv1.TransferListing{
		Transfer:       transferToProto(&l.Transfer),
		PlayerName:     l.PlayerName,
		PlayerPosition: string(l.PlayerPosition),
		PlayerValue:    l.PlayerValue.StringFixed(2),
		TeamName:       l.TeamName,
	}
}
