package transfersv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api"
	transfersv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1"
)

// TransferServiceName is the fully-qualified name of the TransferService service.
const TransferServiceName = "transfers.v1.TransferService"

// Fully-qualified procedure names, used as the HTTP route of each RPC.
const (
	TransferServiceListTransfersProcedure  = "/transfers.v1.TransferService/ListTransfers"
	TransferServiceCreateTransferProcedure = "/transfers.v1.TransferService/CreateTransfer"
	TransferServiceCancelTransferProcedure = "/transfers.v1.TransferService/CancelTransfer"
	TransferServiceBuyPlayerProcedure      = "/transfers.v1.TransferService/BuyPlayer"
)

// TransferServiceClient is a client for the transfers.v1.TransferService service.
type TransferServiceClient interface {
	ListTransfers(context.Context, *connect.Request[transfersv1.ListTransfersRequest]) (*connect.Response[transfersv1.ListTransfersResponse], error)
	CreateTransfer(context.Context, *connect.Request[transfersv1.CreateTransferRequest]) (*connect.Response[transfersv1.CreateTransferResponse], error)
	CancelTransfer(context.Context, *connect.Request[transfersv1.CancelTransferRequest]) (*connect.Response[transfersv1.CancelTransferResponse], error)
	BuyPlayer(context.Context, *connect.Request[transfersv1.BuyPlayerRequest]) (*connect.Response[transfersv1.BuyPlayerResponse], error)
}

// NewTransferServiceClient constructs a client speaking the Connect protocol with JSON payloads.
func NewTransferServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransferServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &transferServiceClient{
		listTransfers: connect.NewClient[transfersv1.ListTransfersRequest, transfersv1.ListTransfersResponse](
			httpClient, baseURL+TransferServiceListTransfersProcedure, opts...,
		),
		createTransfer: connect.NewClient[transfersv1.CreateTransferRequest, transfersv1.CreateTransferResponse](
			httpClient, baseURL+TransferServiceCreateTransferProcedure, opts...,
		),
		cancelTransfer: connect.NewClient[transfersv1.CancelTransferRequest, transfersv1.CancelTransferResponse](
			httpClient, baseURL+TransferServiceCancelTransferProcedure, opts...,
		),
		buyPlayer: connect.NewClient[transfersv1.BuyPlayerRequest, transfersv1.BuyPlayerResponse](
			httpClient, baseURL+TransferServiceBuyPlayerProcedure, opts...,
		),
	}
}

type transferServiceClient struct {
	listTransfers  *connect.Client[transfersv1.ListTransfersRequest, transfersv1.ListTransfersResponse]
	createTransfer *connect.Client[transfersv1.CreateTransferRequest, transfersv1.CreateTransferResponse]
	cancelTransfer *connect.Client[transfersv1.CancelTransferRequest, transfersv1.CancelTransferResponse]
	buyPlayer      *connect.Client[transfersv1.BuyPlayerRequest, transfersv1.BuyPlayerResponse]
}

func (c *transferServiceClient) ListTransfers(ctx context.Context, req *connect.Request[transfersv1.ListTransfersRequest]) (*connect.Response[transfersv1.ListTransfersResponse], error) {
	return c.listTransfers.CallUnary(ctx, req)
}

func (c *transferServiceClient) CreateTransfer(ctx context.Context, req *connect.Request[transfersv1.CreateTransferRequest]) (*connect.Response[transfersv1.CreateTransferResponse], error) {
	return c.createTransfer.CallUnary(ctx, req)
}

func (c *transferServiceClient) CancelTransfer(ctx context.Context, req *connect.Request[transfersv1.CancelTransferRequest]) (*connect.Response[transfersv1.CancelTransferResponse], error) {
	return c.cancelTransfer.CallUnary(ctx, req)
}

func (c *transferServiceClient) BuyPlayer(ctx context.Context, req *connect.Request[transfersv1.BuyPlayerRequest]) (*connect.Response[transfersv1.BuyPlayerResponse], error) {
	return c.buyPlayer.CallUnary(ctx, req)
}

// TransferServiceHandler is implemented by the transfers.v1.TransferService server.
type TransferServiceHandler interface {
	ListTransfers(context.Context, *connect.Request[transfersv1.ListTransfersRequest]) (*connect.Response[transfersv1.ListTransfersResponse], error)
	CreateTransfer(context.Context, *connect.Request[transfersv1.CreateTransferRequest]) (*connect.Response[transfersv1.CreateTransferResponse], error)
	CancelTransfer(context.Context, *connect.Request[transfersv1.CancelTransferRequest]) (*connect.Response[transfersv1.CancelTransferResponse], error)
	BuyPlayer(context.Context, *connect.Request[transfersv1.BuyPlayerRequest]) (*connect.Response[transfersv1.BuyPlayerResponse], error)
}

// NewTransferServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTransferServiceHandler(svc TransferServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	listTransfersHandler := connect.NewUnaryHandler(TransferServiceListTransfersProcedure, svc.ListTransfers, opts...)
	createTransferHandler := connect.NewUnaryHandler(TransferServiceCreateTransferProcedure, svc.CreateTransfer, opts...)
	cancelTransferHandler := connect.NewUnaryHandler(TransferServiceCancelTransferProcedure, svc.CancelTransfer, opts...)
	buyPlayerHandler := connect.NewUnaryHandler(TransferServiceBuyPlayerProcedure, svc.BuyPlayer, opts...)
	return "/transfers.v1.TransferService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TransferServiceListTransfersProcedure:
			listTransfersHandler.ServeHTTP(w, r)
		case TransferServiceCreateTransferProcedure:
			createTransferHandler.ServeHTTP(w, r)
		case TransferServiceCancelTransferProcedure:
			cancelTransferHandler.ServeHTTP(w, r)
		case TransferServiceBuyPlayerProcedure:
			buyPlayerHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
