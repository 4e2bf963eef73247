package slack

// Block Kit subset used by the approval prompt.

type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text,omitempty"`
	Elements []Element   `json:"elements,omitempty"`
}

type Element struct {
	Type     string      `json:"type"`
	ActionID string      `json:"action_id,omitempty"`
	Value    string      `json:"value,omitempty"`
	Style    string      `json:"style,omitempty"`
	Text     *TextObject `json:"text,omitempty"`
}

type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// InteractionPayload is what Slack posts back to /interactivity
// (url-encoded under the "payload" form field).
type InteractionPayload struct {
	Type    string `json:"type"`
	User    User   `json:"user"`
	Actions []struct {
		ActionID string `json:"action_id"`
		Value    string `json:"value"`
	} `json:"actions"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
