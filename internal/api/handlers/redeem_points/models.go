package redeem_points

// RedeemPointsRequest HTTP request model
type RedeemPointsRequest struct {
	Points      int    `json:"points"`
	Description string `json:"description,omitempty"`
}
