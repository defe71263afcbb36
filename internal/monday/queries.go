package monday

import (
	"context"
	"encoding/json"
	"fmt"
)

const changeColumnValueMutation = `mutation ($boardId: ID!, $itemId: ID!, $columnId: String!, $value: JSON!) {
  change_column_value (board_id: $boardId, item_id: $itemId, column_id: $columnId, value: $value) {
    id
  }
}`

const itemNameQuery = `query ($itemId: [ID!]) {
  items (ids: $itemId) {
    name
  }
}`

const columnValueQuery = `query ($itemId: [ID!], $columnId: [String!]) {
  items (ids: $itemId) {
    column_values (ids: $columnId) {
      text
      value
    }
  }
}`

// UpdateStatusColumn sets the status column on an item to the given
// label index.
func (c *Client) UpdateStatusColumn(ctx context.Context, boardID, itemID, columnID string, index int) error {
	value, err := json.Marshal(map[string]int{"index": index})
	if err != nil {
		return fmt.Errorf("marshal column value: %w", err)
	}

	c.logger.Debug("updating status column",
		"board_id", boardID,
		"item_id", itemID,
		"column_id", columnID,
		"index", index,
	)

	// monday expects the JSON column value as an encoded string.
	_, err = c.Execute(ctx, changeColumnValueMutation, map[string]any{
		"boardId":  boardID,
		"itemId":   itemID,
		"columnId": columnID,
		"value":    string(value),
	})
	if err != nil {
		return fmt.Errorf("update status column: %w", err)
	}
	return nil
}

// GetItemName reads an item's display name.
func (c *Client) GetItemName(ctx context.Context, itemID string) (string, error) {
	data, err := c.Execute(ctx, itemNameQuery, map[string]any{"itemId": []string{itemID}})
	if err != nil {
		return "", fmt.Errorf("get item name: %w", err)
	}

	var out struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode items: %w", err)
	}
	if len(out.Items) == 0 {
		return "", fmt.Errorf("item %s not found", itemID)
	}
	return out.Items[0].Name, nil
}

// ColumnValue is a single column's stored state on an item.
type ColumnValue struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// GetColumnValue reads the current state of one column on an item.
func (c *Client) GetColumnValue(ctx context.Context, itemID, columnID string) (*ColumnValue, error) {
	data, err := c.Execute(ctx, columnValueQuery, map[string]any{
		"itemId":   []string{itemID},
		"columnId": []string{columnID},
	})
	if err != nil {
		return nil, fmt.Errorf("get column value: %w", err)
	}

	var out struct {
		Items []struct {
			ColumnValues []ColumnValue `json:"column_values"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if len(out.Items) == 0 || len(out.Items[0].ColumnValues) == 0 {
		return nil, fmt.Errorf("column %s not found on item %s", columnID, itemID)
	}
	return &out.Items[0].ColumnValues[0], nil
}
