package teamsv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api"
	teamsv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1"
)

// TeamServiceName is the fully-qualified name of the TeamService service.
const TeamServiceName = "teams.v1.TeamService"

const TeamServiceGetMyTeamProcedure = "/teams.v1.TeamService/GetMyTeam"

// TeamServiceClient is a client for the teams.v1.TeamService service.
type TeamServiceClient interface {
	GetMyTeam(context.Context, *connect.Request[teamsv1.GetMyTeamRequest]) (*connect.Response[teamsv1.GetMyTeamResponse], error)
}

func NewTeamServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TeamServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &teamServiceClient{
		getMyTeam: connect.NewClient[teamsv1.GetMyTeamRequest, teamsv1.GetMyTeamResponse](
			httpClient, baseURL+TeamServiceGetMyTeamProcedure, opts...,
		),
	}
}

type teamServiceClient struct {
	getMyTeam *connect.Client[teamsv1.GetMyTeamRequest, teamsv1.GetMyTeamResponse]
}

func (c *teamServiceClient) GetMyTeam(ctx context.Context, req *connect.Request[teamsv1.GetMyTeamRequest]) (*connect.Response[teamsv1.GetMyTeamResponse], error) {
	return c.getMyTeam.CallUnary(ctx, req)
}

// TeamServiceHandler is implemented by the teams.v1.TeamService server.
type TeamServiceHandler interface {
	GetMyTeam(context.Context, *connect.Request[teamsv1.GetMyTeamRequest]) (*connect.Response[teamsv1.GetMyTeamResponse], error)
}

func NewTeamServiceHandler(svc TeamServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	getMyTeamHandler := connect.NewUnaryHandler(TeamServiceGetMyTeamProcedure, svc.GetMyTeam, opts...)
	return "/teams.v1.TeamService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TeamServiceGetMyTeamProcedure:
			getMyTeamHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
