package hubspot

type CreateLeadInput struct {
	OrgName        string
	Email          string
	Phone          string
	Sport          string
	Location       string
	Score          int
	Priority       string
	DealValueCents int
}

type CreateLeadOutput struct {
	ContactID string `json:"contact_id"`
	DealID    string `json:"deal_id"`
	PortalURL string `json:"hubspot_url"`
}

type LeadMetrics struct {
	TotalDeals      int `json:"total_deals"`
	WonDeals        int `json:"won_deals"`
	TotalValueCents int `json:"total_value_cents"`
}
