package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/processor"
)

// rawPayload is the envelope monday delivers. IDs arrive as raw JSON
// because monday sends them as numbers in webhooks but as strings in
// some API versions.
type rawPayload struct {
	Challenge json.RawMessage `json:"challenge"`
	BoardID   json.RawMessage `json:"boardId"`
	Event     json.RawMessage `json:"event"`
}

type rawEvent struct {
	BoardID       json.RawMessage `json:"boardId"`
	PulseID       json.RawMessage `json:"pulseId"`
	ItemID        json.RawMessage `json:"itemId"`
	ColumnID      string          `json:"columnId"`
	ColumnType    string          `json:"columnType"`
	Value         json.RawMessage `json:"value"`
	PreviousValue json.RawMessage `json:"previousValue"`
	UserID        json.RawMessage `json:"userId"`
}

// challengeToken returns the registration handshake token carried by
// the body, if any.
func challengeToken(body []byte) (json.RawMessage, bool) {
	var p rawPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if len(p.Challenge) == 0 || bytes.Equal(p.Challenge, []byte("null")) {
		return nil, false
	}
	return p.Challenge, true
}

// validatePayload checks the body is a JSON object carrying a non-null
// event member.
func validatePayload(body []byte) bool {
	var p rawPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return false
	}
	return len(p.Event) > 0 && !bytes.Equal(p.Event, []byte("null"))
}

// extractEvent flattens the payload into a processor.Event. The item id
// comes from event.pulseId, falling back to event.itemId; the board id
// from event.boardId, falling back to the top-level boardId.
func extractEvent(body []byte) (*processor.Event, error) {
	var p rawPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	var ev rawEvent
	if err := json.Unmarshal(p.Event, &ev); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}

	itemID := idString(ev.PulseID)
	if itemID == "" {
		itemID = idString(ev.ItemID)
	}
	if itemID == "" {
		return nil, fmt.Errorf("event carries no pulseId or itemId")
	}

	boardID := idString(ev.BoardID)
	if boardID == "" {
		boardID = idString(p.BoardID)
	}
	if boardID == "" {
		return nil, fmt.Errorf("event carries no boardId")
	}

	return &processor.Event{
		BoardID:       boardID,
		ItemID:        itemID,
		ColumnID:      ev.ColumnID,
		ColumnType:    ev.ColumnType,
		Value:         ev.Value,
		PreviousValue: ev.PreviousValue,
		UserID:        idString(ev.UserID),
	}, nil
}

// idString normalizes a raw JSON identifier, accepting both numbers and
// strings.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		// Reject non-integer ids like 1.5 without mangling large ids.
		if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return n.String()
		}
	}
	return ""
}
