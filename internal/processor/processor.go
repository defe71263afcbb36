// Package processor performs the post-response half of webhook
// handling: parse the formula value, resolve a status, write it back.
// Work happens on background workers fed by a bounded in-memory queue;
// failures are logged and never surface to the webhook caller.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/log"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/rules"
)

// Event is the flat record extracted from one webhook delivery.
type Event struct {
	// DeliveryID correlates processor logs with request logs.
	DeliveryID string

	BoardID       string
	ItemID        string
	ColumnID      string
	ColumnType    string
	Value         json.RawMessage
	PreviousValue json.RawMessage
	UserID        string
}

// Processor consumes events and issues status updates.
type Processor struct {
	updater        StatusUpdater
	reader         ItemReader
	ruleset        rules.Ruleset
	statusColumnID string

	queue  chan Event
	stopCh chan struct{}
	wg     sync.WaitGroup
	logger *slog.Logger
}

// New creates a Processor. reader may be nil; it only feeds debug logs.
func New(updater StatusUpdater, reader ItemReader, ruleset rules.Ruleset, statusColumnID string, queueSize, workers int) *Processor {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 1
	}

	p := &Processor{
		updater:        updater,
		reader:         reader,
		ruleset:        ruleset,
		statusColumnID: statusColumnID,
		queue:          make(chan Event, queueSize),
		stopCh:         make(chan struct{}),
		logger:         log.WithComponent("processor"),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

// Submit hands an event to the background workers without blocking.
// A full queue drops the event; the caller logs and moves on, since the
// webhook response has already been committed.
func (p *Processor) Submit(evt Event) error {
	select {
	case <-p.stopCh:
		return fmt.Errorf("processor stopped")
	default:
	}

	select {
	case p.queue <- evt:
		return nil
	default:
		return fmt.Errorf("processing queue full")
	}
}

// Stop waits for in-flight events to finish. Queued events that no
// worker has picked up yet are abandoned (fire-and-forget contract).
func (p *Processor) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("processor stopped")
}

func (p *Processor) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopCh:
			return
		case evt := <-p.queue:
			p.process(evt)
		}
	}
}

// process runs one event through parse -> map -> update. Every exit
// path logs; nothing propagates.
func (p *Processor) process(evt Event) {
	logger := log.WithDelivery(evt.DeliveryID).With(
		"board_id", evt.BoardID,
		"item_id", evt.ItemID,
		"column_id", evt.ColumnID,
	)

	n, ok := rules.ParseValue(evt.Value)
	if !ok {
		logger.Info("formula value not numeric, skipping", "value", string(evt.Value))
		return
	}

	status, ok := p.ruleset.Evaluate(n)
	if !ok {
		logger.Info("no status rule matched, skipping", "value", n)
		return
	}

	ctx := context.Background()

	if p.reader != nil && logger.Enabled(ctx, slog.LevelDebug) {
		if name, err := p.reader.GetItemName(ctx, evt.ItemID); err == nil {
			logger.Debug("resolved item", "item_name", name)
		}
	}

	if err := p.updater.UpdateStatusColumn(ctx, evt.BoardID, evt.ItemID, p.statusColumnID, status.Index); err != nil {
		logger.Error("status update failed",
			"value", n,
			"label", status.Label,
			"index", status.Index,
			"error", err,
		)
		return
	}

	logger.Info("status updated",
		"value", n,
		"label", status.Label,
		"index", status.Index,
	)

	if p.reader != nil && logger.Enabled(ctx, slog.LevelDebug) {
		if cv, err := p.reader.GetColumnValue(ctx, evt.ItemID, p.statusColumnID); err == nil {
			logger.Debug("column state after update", "text", cv.Text, "value", cv.Value)
		}
	}
}
