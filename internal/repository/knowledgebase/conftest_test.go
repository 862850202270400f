package knowledgebase

import (
	"context"

	"github.com/kailas-cloud/kbindex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) (db.CreateIndexResponse, error)
	calls         int
	lastDef       *db.IndexDefinition
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) (db.CreateIndexResponse, error) {
	m.calls++
	m.lastDef = def
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return db.CreateIndexResponse{StatusCode: 200, Body: []byte(`{"acknowledged":true}`), Acknowledged: true}, nil
}
