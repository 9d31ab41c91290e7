package types

// NotifyMessage is the chat-webhook payload shape. Most chat systems accept
// a bare text field, so that is all we send.
type NotifyMessage struct {
	Text string `json:"text"`
}
