package knowledgebase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/kbindex/internal/db"
	"github.com/kailas-cloud/kbindex/internal/domain"
)

// store is the consumer interface for index creation (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) (db.CreateIndexResponse, error)
}

// Repo implements usecase/index.Repository.
type Repo struct {
	store  store
	schema domain.VectorSchema
}

// New creates a Knowledge Base index repository.
func New(s store, schema domain.VectorSchema) *Repo {
	return &Repo{store: s, schema: schema}
}

// Definition returns the index definition that Create would send.
func (r *Repo) Definition(name string) (*db.IndexDefinition, error) {
	def, err := buildIndex(name, r.schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}
	return def, nil
}

// Create builds the index definition and creates the index.
// Store errors are mapped to domain errors.
func (r *Repo) Create(ctx context.Context, name string) (domain.Acknowledgement, error) {
	def, err := r.Definition(name)
	if err != nil {
		return domain.Acknowledgement{}, err
	}

	resp, err := r.store.CreateIndex(ctx, def)
	if err != nil {
		return domain.Acknowledgement{}, mapStoreError(err)
	}

	return domain.Acknowledgement{
		StatusCode:   resp.StatusCode,
		Body:         string(resp.Body),
		Acknowledged: resp.Acknowledged,
	}, nil
}

func mapStoreError(err error) error {
	var se *db.StatusError
	if errors.As(err, &se) {
		return domain.NewRejected(se.StatusCode, string(se.Body), errors.Is(err, db.ErrIndexExists))
	}
	return fmt.Errorf("%w: %w", domain.ErrTransport, err)
}
