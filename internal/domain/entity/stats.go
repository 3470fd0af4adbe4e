package entity

// ShopStats is the back office dashboard summary.
type ShopStats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalRevenue  int64 `json:"totalRevenue"`
	PendingOrders int64 `json:"pendingOrders"`
}
