package processor

import (
	"context"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/monday"
)

//go:generate mockgen -destination=mocks/mock_monday.go -package=mocks github.com/rahulsaklanii-code/formula-status-trigger/internal/processor StatusUpdater,ItemReader

// StatusUpdater writes a status index to a column on a board item.
type StatusUpdater interface {
	UpdateStatusColumn(ctx context.Context, boardID, itemID, columnID string, index int) error
}

// ItemReader provides the auxiliary read queries used for debug logging
// around an update.
type ItemReader interface {
	GetItemName(ctx context.Context, itemID string) (string, error)
	GetColumnValue(ctx context.Context, itemID, columnID string) (*monday.ColumnValue, error)
}
