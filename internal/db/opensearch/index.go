package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kbindex/internal/db"
)

// CreateIndex creates an index from the given definition with a single PUT /{index}.
// Statuses other than 200 and 201 come back as *db.StatusError.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) (db.CreateIndexResponse, error) {
	if err := def.Validate(); err != nil {
		return db.CreateIndexResponse{}, fmt.Errorf("invalid index definition: %w", err)
	}

	body, err := json.Marshal(def)
	if err != nil {
		return db.CreateIndexResponse{}, fmt.Errorf("encode index definition: %w", err)
	}

	s.logger.Debug("Creating index",
		zap.String("index", def.Name),
		zap.Stringer("definition", def),
		zap.Int("body_bytes", len(body)),
	)

	res, err := s.client.Indices.Create(
		def.Name,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return db.CreateIndexResponse{}, &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return db.CreateIndexResponse{}, &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("read response: %w", err)}
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return db.CreateIndexResponse{}, &db.StatusError{
			Op:         db.OpCreateIndex,
			StatusCode: res.StatusCode,
			Type:       errorType(raw),
			Body:       raw,
		}
	}

	out := db.CreateIndexResponse{StatusCode: res.StatusCode, Body: raw}
	var ack createIndexAck
	if err := json.Unmarshal(raw, &ack); err == nil {
		out.Acknowledged = ack.Acknowledged
		out.ShardsAcknowledged = ack.ShardsAcknowledged
		out.Index = ack.Index
	}
	return out, nil
}

type createIndexAck struct {
	Acknowledged       bool   `json:"acknowledged"`
	ShardsAcknowledged bool   `json:"shards_acknowledged"`
	Index              string `json:"index"`
}

// errorType extracts error.type from an OpenSearch error body. Serverless sometimes
// answers with a plain string in "error"; that yields "".
func errorType(raw []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Error) == 0 {
		return ""
	}
	var detail struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(env.Error, &detail); err != nil {
		return ""
	}
	return detail.Type
}
