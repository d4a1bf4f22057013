package transfers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	transfersv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1/transfersv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	*fixture
	server   *httptest.Server
	verifier *auth.Verifier
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := newFixture(t)
	verifier, err := auth.NewVerifier("service-test-secret", f.clock)
	require.NoError(t, err)

	mux := http.NewServeMux()
	path, handler := transfersv1connect.NewTransferServiceHandler(
		transfers.NewService(f.app),
		connect.WithInterceptors(auth.NewInterceptor(verifier)),
	)
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &serviceFixture{fixture: f, server: server, verifier: verifier}
}

func (sf *serviceFixture) client(t *testing.T, userID uuid.UUID) transfersv1connect.TransferServiceClient {
	t.Helper()
	token, err := sf.verifier.Issue(userID, time.Hour)
	require.NoError(t, err)
	return transfersv1connect.NewTransferServiceClient(
		sf.server.Client(), sf.server.URL,
		connect.WithInterceptors(auth.NewClientInterceptor(token)),
	)
}

func TestService_ListBuyFlow(t *testing.T) {
	sf := newServiceFixture(t)
	ctx := context.Background()
	seller := sf.addManager("Team A", "1000000", 20)
	buyer := sf.addManager("Team B", "200000", 20)

	sellerClient := sf.client(t, seller.UserID)
	created, err := sellerClient.CreateTransfer(ctx, connect.NewRequest(&transfersv1.CreateTransferRequest{
		TeamId:   seller.TeamID.String(),
		PlayerId: seller.Players[0].String(),
		Price:    "100000",
	}))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", created.Msg.Transfer.Status)
	assert.Equal(t, "100000.00", created.Msg.Transfer.Price)

	buyerClient := sf.client(t, buyer.UserID)
	listed, err := buyerClient.ListTransfers(ctx, connect.NewRequest(&transfersv1.ListTransfersRequest{TeamName: "team a"}))
	require.NoError(t, err)
	require.Len(t, listed.Msg.Transfers, 1)
	assert.Equal(t, int32(1), listed.Msg.Total)
	assert.Equal(t, "Team A", listed.Msg.Transfers[0].TeamName)

	bought, err := buyerClient.BuyPlayer(ctx, connect.NewRequest(&transfersv1.BuyPlayerRequest{
		TeamId:     buyer.TeamID.String(),
		TransferId: created.Msg.Transfer.Id,
	}))
	require.NoError(t, err)
	assert.Equal(t, "95000.0000", bought.Msg.PurchasePrice)
	assert.Equal(t, seller.Players[0].String(), bought.Msg.PlayerId)

	_, err = sellerClient.CancelTransfer(ctx, connect.NewRequest(&transfersv1.CancelTransferRequest{
		TeamId:     seller.TeamID.String(),
		TransferId: created.Msg.Transfer.Id,
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Equal(t, transfers.RuleNotPending, transfers.RuleFromConnectError(err))
}

func TestService_ErrorCodes(t *testing.T) {
	sf := newServiceFixture(t)
	ctx := context.Background()
	seller := sf.addManager("Sellers", "1000000", 15)
	other := sf.addManager("Others", "1000000", 20)
	client := sf.client(t, seller.UserID)

	tests := []struct {
		name string
		req  *transfersv1.CreateTransferRequest
		code connect.Code
		rule transfers.Rule
	}{
		{
			name: "malformed team id",
			req:  &transfersv1.CreateTransferRequest{TeamId: "nope", PlayerId: seller.Players[0].String(), Price: "10"},
			code: connect.CodeInvalidArgument,
			rule: transfers.RuleInvalidRequest,
		},
		{
			name: "malformed price",
			req:  &transfersv1.CreateTransferRequest{TeamId: seller.TeamID.String(), PlayerId: seller.Players[0].String(), Price: "ten"},
			code: connect.CodeInvalidArgument,
			rule: transfers.RuleInvalidPrice,
		},
		{
			name: "roster at floor",
			req:  &transfersv1.CreateTransferRequest{TeamId: seller.TeamID.String(), PlayerId: seller.Players[0].String(), Price: "10"},
			code: connect.CodeFailedPrecondition,
			rule: transfers.RuleRosterFloor,
		},
		{
			name: "someone else's team",
			req:  &transfersv1.CreateTransferRequest{TeamId: other.TeamID.String(), PlayerId: other.Players[0].String(), Price: "10"},
			code: connect.CodePermissionDenied,
		},
		{
			name: "unknown team",
			req:  &transfersv1.CreateTransferRequest{TeamId: uuid.NewString(), PlayerId: seller.Players[0].String(), Price: "10"},
			code: connect.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateTransfer(ctx, connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
			assert.Equal(t, tt.rule, transfers.RuleFromConnectError(err))
		})
	}
}

func TestService_ConflictIsUnavailable(t *testing.T) {
	sf := newServiceFixture(t)
	ctx := context.Background()
	seller := sf.addManager("Sellers", "1000000", 20)
	buyer := sf.addManager("Buyers", "1000000", 20)
	listing := sf.list(t, seller, seller.Players[0], "1000")

	sf.store.FailNextCommits(sf.rules.MaxPurchaseAttempts)
	_, err := sf.client(t, buyer.UserID).BuyPlayer(ctx, connect.NewRequest(&transfersv1.BuyPlayerRequest{
		TeamId:     buyer.TeamID.String(),
		TransferId: listing.ID.String(),
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestService_RequiresAuthentication(t *testing.T) {
	sf := newServiceFixture(t)
	client := transfersv1connect.NewTransferServiceClient(sf.server.Client(), sf.server.URL)

	_, err := client.ListTransfers(context.Background(), connect.NewRequest(&transfersv1.ListTransfersRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}
