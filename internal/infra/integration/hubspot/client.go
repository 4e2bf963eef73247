package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Client struct {
	apiToken   string
	baseURL    string
	portalID   string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiToken: os.Getenv("HUBSPOT_API_TOKEN"),
		portalID: os.Getenv("HUBSPOT_PORTAL_ID"),
		baseURL:  "https://api.hubapi.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateLead creates (or reuses) the contact for the org's email and
// opens a deal against it. Contact + deal are what "approve" means in
// this pipeline, so callers rely on this running at most once per
// approval.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if c.apiToken == "" {
		log.Println("⚠️ HubSpot: API token not configured")
		return nil, fmt.Errorf("hubspot not configured")
	}

	contactID, err := c.findOrCreateContact(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact: %w", err)
	}

	dealID, err := c.createDeal(ctx, contactID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	out := &CreateLeadOutput{
		ContactID: contactID,
		DealID:    dealID,
		PortalURL: fmt.Sprintf("https://app.hubspot.com/contacts/%s/deal/%s", c.portalID, dealID),
	}
	log.Printf("✅ HubSpot: deal %s created for %s (contact %s)", dealID, input.OrgName, contactID)
	return out, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, input CreateLeadInput) (string, error) {
	if input.Email != "" {
		if id, err := c.findContactByEmail(ctx, input.Email); err == nil && id != "" {
			log.Printf("📇 HubSpot: existing contact found: %s", id)
			return id, nil
		}
	}
	return c.createContact(ctx, input)
}

func (c *Client) findContactByEmail(ctx context.Context, email string) (string, error) {
	searchBody := map[string]interface{}{
		"filterGroups": []map[string]interface{}{
			{
				"filters": []map[string]interface{}{
					{"propertyName": "email", "operator": "EQ", "value": email},
				},
			},
		},
		"limit": 1,
	}

	body, err := c.post(ctx, "/crm/v3/objects/contacts/search", searchBody)
	if err != nil {
		return "", err
	}

	var result struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("contact not found")
	}
	return result.Results[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, input CreateLeadInput) (string, error) {
	contactBody := map[string]interface{}{
		"properties": map[string]string{
			"company":  input.OrgName,
			"email":    input.Email,
			"phone":    input.Phone,
			"city":     input.Location,
			"industry": input.Sport,
		},
	}

	body, err := c.post(ctx, "/crm/v3/objects/contacts", contactBody)
	if err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("contact created but no id returned")
	}
	log.Printf("✅ HubSpot: new contact created: %s", result.ID)
	return result.ID, nil
}

func (c *Client) createDeal(ctx context.Context, contactID string, input CreateLeadInput) (string, error) {
	dealBody := map[string]interface{}{
		"properties": map[string]interface{}{
			"dealname":  fmt.Sprintf("%s - %s outreach", input.OrgName, input.Sport),
			"amount":    fmt.Sprintf("%.2f", float64(input.DealValueCents)/100),
			"dealstage": "appointmentscheduled",
			"pipeline":  "default",
		},
		"associations": []map[string]interface{}{
			{
				"to": map[string]string{"id": contactID},
				"types": []map[string]interface{}{
					{"associationCategory": "HUBSPOT_DEFINED", "associationTypeId": 3},
				},
			},
		},
	}

	body, err := c.post(ctx, "/crm/v3/objects/deals", dealBody)
	if err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("deal created but no id returned")
	}
	return result.ID, nil
}

// AddNote attaches a timeline note to a contact.
func (c *Client) AddNote(ctx context.Context, contactID, text string) error {
	noteBody := map[string]interface{}{
		"properties": map[string]string{
			"hs_note_body": text,
			"hs_timestamp": time.Now().UTC().Format(time.RFC3339),
		},
		"associations": []map[string]interface{}{
			{
				"to": map[string]string{"id": contactID},
				"types": []map[string]interface{}{
					{"associationCategory": "HUBSPOT_DEFINED", "associationTypeId": 202},
				},
			},
		},
	}
	_, err := c.post(ctx, "/crm/v3/objects/notes", noteBody)
	return err
}

// TrackView records that someone opened the lead detail page, as a
// timeline note on the contact. Best-effort from the caller's side.
func (c *Client) TrackView(ctx context.Context, contactID string) error {
	return c.AddNote(ctx, contactID,
		"Lead details viewed at "+time.Now().UTC().Format(time.RFC3339))
}

// GetLeadMetrics pulls aggregate deal stats for the report.
func (c *Client) GetLeadMetrics(ctx context.Context) (*LeadMetrics, error) {
	endpoint := "/crm/v3/objects/deals?limit=100&properties=amount,dealstage"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch deals: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results []struct {
			Properties struct {
				Amount    string `json:"amount"`
				DealStage string `json:"dealstage"`
			} `json:"properties"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	metrics := &LeadMetrics{TotalDeals: len(result.Results)}
	for _, d := range result.Results {
		var amount float64
		fmt.Sscanf(d.Properties.Amount, "%f", &amount)
		metrics.TotalValueCents += int(amount * 100)
		if d.Properties.DealStage == "closedwon" {
			metrics.WonDeals++
		}
	}
	return metrics, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("hubspot %s: %d - %s", endpoint, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
