package schema

// CryptoAsset is a platform treasury balance. Amounts and the USD exchange rate
// travel as decimal strings.
type CryptoAsset struct {
	Symbol          string `json:"symbol" validate:"required"`
	Blockchain      string `json:"blockchain"`
	AvailableAmount string `json:"availableAmount" validate:"decimal"`
	TotalAmount     string `json:"totalAmount" validate:"decimal"`
	BlockedAmount   string `json:"blockedAmount" validate:"decimal"`
	AllocatedAmount string `json:"allocatedAmount" validate:"decimal"`
	ExchangeRate    string `json:"exchangeRate" validate:"decimal"`
}

// User is a platform player as shown in operator search results.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Tier      string `json:"tier,omitempty"`
	Status    int    `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ReferralStats are the affiliate funnel counters reported by the platform.
type ReferralStats struct {
	Clicks        int64 `json:"clicks" validate:"gte=0"`
	Registrations int64 `json:"registrations" validate:"gte=0"`
	Depositors    int64 `json:"depositors" validate:"gte=0"`
}
