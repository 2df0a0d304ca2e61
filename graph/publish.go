// Package graph publishes hypergraph facts to a live knowledge-graph
// NATS subject, as an optional, additive side-channel alongside
// document-based Import/Export.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the NATS subject published to.
const GraphIngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the wire format for a batch of flattened
// facts, matching the shape the teacher's knowledge-graph ingestion
// side expects.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishFacts flattens every fact identified by uids into a
// message.Triple (Subject/Predicate/Object taken from the fact's
// From/Relation/To) and publishes them as one entity-ingest message
// keyed by correlationID. A nil client is a graceful no-op, the same
// degradation policy the teacher's PublishProposal used.
func PublishFacts(ctx context.Context, nc *natsclient.Client, store *hypergraph.Store, uids []string, source, correlationID string) error {
	if nc == nil {
		return nil
	}

	now := time.Now()
	var triples []message.Triple
	for _, uid := range uids {
		fact, ok := store.Fact(uid)
		if !ok {
			continue
		}
		for _, from := range fact.From {
			for _, to := range fact.To {
				triples = append(triples, message.Triple{
					Subject:    from,
					Predicate:  fact.Relation,
					Object:     to,
					Source:     source,
					Timestamp:  now,
					Confidence: 1.0,
				})
			}
		}
	}

	if len(triples) == 0 {
		return nil
	}

	msg := EntityIngestMessage{
		ID:        correlationID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal fact batch: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish fact batch: %w", err)
	}
	return nil
}
