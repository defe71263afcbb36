package webhook

import (
	"log/slog"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/config"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/log"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/processor"
)

// Filter decides which column-change events are eligible for
// processing. The ignore-set is the loop breaker: writing a status
// fires a column-change webhook of its own, which must die here.
type Filter struct {
	allowed           map[string]struct{}
	ignored           map[string]struct{}
	requireColumnType bool
	logger            *slog.Logger
}

// NewFilter builds a Filter from configuration. An empty allow-list
// allows every column type not in the ignore-set.
func NewFilter(cfg config.FilterConfig) *Filter {
	f := &Filter{
		allowed:           make(map[string]struct{}, len(cfg.AllowedColumnTypes)),
		ignored:           make(map[string]struct{}, len(cfg.IgnoredColumnTypes)),
		requireColumnType: cfg.RequireColumnType,
		logger:            log.WithComponent("filter"),
	}
	for _, t := range cfg.AllowedColumnTypes {
		f.allowed[t] = struct{}{}
	}
	for _, t := range cfg.IgnoredColumnTypes {
		f.ignored[t] = struct{}{}
	}
	return f
}

// ShouldProcess reports whether the event is eligible. Events without a
// columnType pass by default so that column-scoped subscriptions which
// omit the field keep working; require_column_type tightens this.
func (f *Filter) ShouldProcess(evt *processor.Event) bool {
	if evt.ColumnType == "" {
		if f.requireColumnType {
			return false
		}
		f.logger.Warn("event has no columnType, processing permissively",
			"board_id", evt.BoardID,
			"item_id", evt.ItemID,
			"column_id", evt.ColumnID,
		)
		return true
	}

	if _, ok := f.ignored[evt.ColumnType]; ok {
		return false
	}

	if len(f.allowed) > 0 {
		if _, ok := f.allowed[evt.ColumnType]; !ok {
			return false
		}
	}

	return true
}
