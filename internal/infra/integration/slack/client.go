package slack

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

	"github.com/xavierca1/leadflow/internal/entity"
)

// Button action ids recognized back on the /interactivity endpoint.
const (
	ActionCreateDeal = "create_hubspot_deal"
	ActionSkipLead   = "skip_lead"
)

type Client struct {
	webhookURL string
	channel    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		webhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		channel:    os.Getenv("SLACK_CHANNEL"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendApprovalPrompt posts the interactive decision message. The
// button values carry the approval id, which is all the callback needs
// to route the decision.
func (c *Client) SendApprovalPrompt(ctx context.Context, approvalID string, lead *entity.ScoredLead) error {
	p := lead.Prospect
	msg := Message{
		Channel: c.channel,
		Text:    fmt.Sprintf("New qualified lead: %s (score %d)", p.Name, lead.Score),
		Blocks: []Block{
			{
				Type: "section",
				Text: &TextObject{
					Type: "mrkdwn",
					Text: fmt.Sprintf(
						"*%s* — %s, %s\nScore: *%d* (%s) · Reach: %d · Facilities: %d · Since %d",
						p.Name, p.Sport, p.Location,
						lead.Score, lead.Priority,
						p.EstimatedReach, p.FacilityCount, p.FoundedYear,
					),
				},
			},
			{
				Type: "actions",
				Elements: []Element{
					{
						Type:     "button",
						Style:    "primary",
						ActionID: ActionCreateDeal,
						Value:    approvalID,
						Text:     &TextObject{Type: "plain_text", Text: "Create HubSpot Deal"},
					},
					{
						Type:     "button",
						Style:    "danger",
						ActionID: ActionSkipLead,
						Value:    approvalID,
						Text:     &TextObject{Type: "plain_text", Text: "Skip"},
					},
				},
			},
		},
	}
	return c.post(ctx, msg)
}

// SendMessage posts a plain text notification.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	return c.post(ctx, Message{Channel: c.channel, Text: text})
}

func (c *Client) post(ctx context.Context, msg Message) error {
	if c.webhookURL == "" {
		log.Println("⚠️ Slack: webhook URL not configured, dropping message")
		return fmt.Errorf("slack not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
