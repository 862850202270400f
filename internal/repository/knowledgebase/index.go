package knowledgebase

import (
	"github.com/kailas-cloud/kbindex/internal/db"
	"github.com/kailas-cloud/kbindex/internal/domain"
)

// buildIndex creates the Knowledge Base IndexDefinition: one HNSW vector field
// followed by the text chunk and metadata fields, in that order.
func buildIndex(name string, schema domain.VectorSchema) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		KNN(schema.KNNEFSearch, schema.KNNEFConstruction).
		VectorHNSW(
			schema.VectorField,
			schema.Dimensions,
			db.SpaceType(schema.SpaceType),
			db.Engine(schema.Engine),
			schema.HNSWM,
			schema.HNSWEFConstruction,
		).
		Text(schema.TextField).
		Text(schema.MetadataField).
		Build()
}
