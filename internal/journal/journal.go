// Package journal records flow events in an embedded NATS JetStream stream so
// a running onboarding session can be inspected, for example through the MCP
// flow-history tool.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/onboardr/internal/flow"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// publishTimeout bounds a single publish so a slow stream never stalls
// navigation.
const publishTimeout = 2 * time.Second

// Record is one journaled flow event.
type Record struct {
	Seq        uint64    `json:"seq"`
	Flow       string    `json:"flow"`
	Kind       string    `json:"kind"`
	Index      int       `json:"index"`
	Step       string    `json:"step"`
	Option     int       `json:"option,omitempty"`
	Title      string    `json:"title,omitempty"`
	OptionSlug string    `json:"option_slug,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Journal publishes flow events and reads them back.
type Journal struct {
	flowID string
	ns     *server.Server
	nc     *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

// Open starts the embedded server in storeDir and prepares the stream.
// flowID scopes the subjects this journal writes to.
func Open(ctx context.Context, storeDir, flowID string) (*Journal, error) {
	if flowID == "" {
		return nil, fmt.Errorf("journal needs a flow id")
	}

	ns, err := startEmbedded(storeDir)
	if err != nil {
		return nil, err
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		_ = shutdown(nc, ns)
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	stream, err := setupStream(ctx, js)
	if err != nil {
		_ = shutdown(nc, ns)
		return nil, fmt.Errorf("creating stream: %w", err)
	}

	logger.Debug("journal ready for flow %s", flowID)
	return &Journal{flowID: flowID, ns: ns, nc: nc, js: js, stream: stream}, nil
}

// FlowID returns the id this journal publishes under.
func (j *Journal) FlowID() string {
	return j.flowID
}

// OnEvent implements flow.Observer. Publish errors are logged and dropped;
// journaling never interferes with navigation.
func (j *Journal) OnEvent(e flow.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if _, err := j.Publish(ctx, e); err != nil {
		logger.Warn("journal publish failed: %v", err)
	}
}

// Publish appends e to the stream.
func (j *Journal) Publish(ctx context.Context, e flow.Event) (*jetstream.PubAck, error) {
	rec := Record{
		Flow:      j.flowID,
		Kind:      e.Kind.String(),
		Index:     e.Index,
		Step:      e.Step.String(),
		Timestamp: e.Time,
	}
	if e.Kind == flow.EventSelectionChanged {
		rec.Option = e.Option
		rec.Title = e.Title
		rec.OptionSlug = slug.Make(e.Title)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}

	subject := SubjectForEvent(j.flowID, rec.Kind)
	ack, err := j.js.Publish(ctx, subject, data)
	if err != nil {
		return nil, fmt.Errorf("publishing to %s: %w", subject, err)
	}
	logger.Debug("journaled %s event seq=%d", rec.Kind, ack.Sequence)
	return ack, nil
}

// History returns every record of flowID in publish order.
func (j *Journal) History(ctx context.Context, flowID string) ([]Record, error) {
	consumer, err := j.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: SubjectForFlow(flowID),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	return readAll(consumer)
}

// batchFetcher is the part of a jetstream.Consumer readAll needs.
type batchFetcher interface {
	FetchNoWait(batch int) (jetstream.MessageBatch, error)
}

const batchSize = 500

// readAll drains c in batches. Running out of messages ends the read; any
// other fetch error is returned.
func readAll(c batchFetcher) ([]Record, error) {
	var records []Record
	for {
		msgs, err := c.FetchNoWait(batchSize)
		if errors.Is(err, jetstream.ErrNoMessages) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("fetching journal records: %w", err)
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var rec Record
			if err := json.Unmarshal(msg.Data(), &rec); err != nil {
				logger.Warn("skipping malformed journal record: %v", err)
				_ = msg.Ack()
				continue
			}
			if meta, err := msg.Metadata(); err == nil {
				rec.Seq = meta.Sequence.Stream
			}
			records = append(records, rec)
			_ = msg.Ack()
		}
		if err := msgs.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
			return nil, fmt.Errorf("reading journal batch: %w", err)
		}
		if count < batchSize {
			return records, nil
		}
	}
}

// Close shuts the connection and embedded server down.
func (j *Journal) Close() error {
	return shutdown(j.nc, j.ns)
}

// Summary is History reduced to what a reader usually wants to know.
type Summary struct {
	Events    int         `json:"events"`
	LastIndex int         `json:"last_index"`
	Visits    map[int]int `json:"visits"`
	Selected  string      `json:"selected,omitempty"`
	Finished  bool        `json:"finished"`
}

// Summarize reduces records in order.
func Summarize(records []Record) Summary {
	s := Summary{Visits: make(map[int]int)}
	for _, r := range records {
		s.Events++
		switch r.Kind {
		case flow.EventIndexChanged.String():
			s.LastIndex = r.Index
			s.Visits[r.Index]++
		case flow.EventSelectionChanged.String():
			s.Selected = r.Title
		case flow.EventFinished.String():
			s.Finished = true
			s.LastIndex = r.Index
		}
	}
	return s
}
