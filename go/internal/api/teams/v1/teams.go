// Package teamsv1 holds the request and response messages of teams.v1.TeamService.
package teamsv1

type Player struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Value    string `json:"value"`
}

type Team struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	Name      string    `json:"name"`
	Budget    string    `json:"budget"`
	Players   []*Player `json:"players"`
	CreatedAt string    `json:"createdAt"`
}

type GetMyTeamRequest struct{}

type GetMyTeamResponse struct {
	Team *Team `json:"team"`
}
