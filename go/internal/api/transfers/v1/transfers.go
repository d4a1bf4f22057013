// Package transfersv1 holds the request and response messages of
// transfers.v1.TransferService. Money is carried as decimal strings.
package transfersv1

type Transfer struct {
	Id          string `json:"id"`
	PlayerId    string `json:"playerId"`
	TeamId      string `json:"teamId"`
	Price       string `json:"price"`
	Status      string `json:"status"`
	BuyerTeamId string `json:"buyerTeamId,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type TransferListing struct {
	Transfer       *Transfer `json:"transfer"`
	PlayerName     string    `json:"playerName"`
	PlayerPosition string    `json:"playerPosition"`
	PlayerValue    string    `json:"playerValue"`
	TeamName       string    `json:"teamName"`
}

type ListTransfersRequest struct {
	TeamName   string `json:"teamName,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	MinPrice   string `json:"minPrice,omitempty"`
	MaxPrice   string `json:"maxPrice,omitempty"`
	Limit      int32  `json:"limit,omitempty"`
	Page       int32  `json:"page,omitempty"`
}

type ListTransfersResponse struct {
	Transfers []*TransferListing `json:"transfers"`
	Total     int32              `json:"total"`
	Limit     int32              `json:"limit"`
	Page      int32              `json:"page"`
}

type CreateTransferRequest struct {
	TeamId   string `json:"teamId"`
	PlayerId string `json:"playerId"`
	Price    string `json:"price"`
}

type CreateTransferResponse struct {
	Transfer *Transfer `json:"transfer"`
}

type CancelTransferRequest struct {
	TeamId     string `json:"teamId"`
	TransferId string `json:"transferId"`
}

type CancelTransferResponse struct {
	Success bool `json:"success"`
}

type BuyPlayerRequest struct {
	TeamId     string `json:"teamId"`
	TransferId string `json:"transferId"`
}

type BuyPlayerResponse struct {
	TransferId    string `json:"transferId"`
	PlayerId      string `json:"playerId"`
	PurchasePrice string `json:"purchasePrice"`
	BuyerTeamId   string `json:"buyerTeamId"`
	SellerTeamId  string `json:"sellerTeamId"`
	CompletedAt   string `json:"completedAt"`
}
