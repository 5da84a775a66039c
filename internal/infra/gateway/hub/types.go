package hub

import "encoding/json"

// WalletPayload is the hub wallet-read response
type WalletPayload struct {
	Balance      json.Number          `json:"balance"`
	Transactions []TransactionPayload `json:"transactions"`
}

// TransactionPayload is a single raw ledger record on the wire. Amount is
// decoded as json.Number so one bad record cannot fail the whole payload.
type TransactionPayload struct {
	ID        string         `json:"id"`
	Amount    json.Number    `json:"amount"`
	Type      string         `json:"type"`
	CreatedAt string         `json:"createdAt"`
	Title     string         `json:"title"`
	Source    *SourcePayload `json:"source"`
}

// SourcePayload classifies why a transaction occurred
type SourcePayload struct {
	Kind string `json:"kind"`
}

// purchaseBody is the wallet write request
type purchaseBody struct {
	Amount         string            `json:"amount"`
	Title          string            `json:"title"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"idempotencyKey"`
}

// EventsResponse is the paginated hub events listing
type EventsResponse struct {
	Links Links          `json:"links"`
	Data  []EventPayload `json:"data"`
}

// Links contains pagination URLs
type Links struct {
	Self string `json:"self"`
	Next string `json:"next"`
}

// EventPayload is a convoy event on the wire
type EventPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	StartsAt    string `json:"startsAt"` // RFC3339
	EndsAt      string `json:"endsAt"`   // RFC3339
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	Server      string `json:"server"`
}

// inviteBody is the invitation submission request
type inviteBody struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Age             int    `json:"age"`
	ExperienceHours int    `json:"experienceHours"`
	Discord         string `json:"discord,omitempty"`
	Motivation      string `json:"motivation"`
}

// errorEnvelope is the hub error response body
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorEnvelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
