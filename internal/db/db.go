package db

import "context"

// CreateIndexResponse is the decoded answer to a successful index creation.
type CreateIndexResponse struct {
	StatusCode         int
	Body               []byte
	Acknowledged       bool
	ShardsAcknowledged bool
	Index              string
}

// IndexManager provides index creation.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) (CreateIndexResponse, error)
}
