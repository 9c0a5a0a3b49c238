package ingest

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dcall/lastcall/internal/cdr"
)

// Event is the wire payload published on the event bus for a completed call.
type Event struct {
	UniqueID    string `json:"uniqueid"`
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	EndTime     string `json:"endtime"`
}

// Ingestor consumes live call-completion events and appends accepted records
// to the store. The bus handler only enqueues; a single consumer goroutine
// does the processing, so events are handled one at a time in arrival order.
type Ingestor struct {
	store  *cdr.Store
	events chan Event
	logger *slog.Logger
}

func New(store *cdr.Store, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		store:  store,
		events: make(chan Event, 256),
		logger: logger,
	}
}

// HandleCDR is the event-bus subscription handler.
func (in *Ingestor) HandleCDR(subject string, data []byte) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		in.logger.Error("failed to parse cdr event", "subject", subject, "error", err)
		return
	}
	in.events <- evt
}

// Run processes queued events until ctx is cancelled.
func (in *Ingestor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-in.events:
			in.process(evt)
		}
	}
}

func (in *Ingestor) process(evt Event) {
	if evt.UniqueID == "" {
		// Some trunk configurations emit CDRs without a uniqueid. The field
		// is informational only, so fill one in rather than drop the call.
		evt.UniqueID = uuid.NewString()
	}

	rec, ok := cdr.Normalize(evt.UniqueID, evt.Channel, evt.Destination, evt.EndTime)
	if !ok {
		in.logger.Debug("cdr rejected", "channel", evt.Channel, "destination", evt.Destination)
		return
	}

	in.store.Append(rec)
	in.logger.Info("cdr stored",
		"uniqueid", rec.UniqueID,
		"channel", rec.Channel,
		"destination", rec.Destination,
	)
}
