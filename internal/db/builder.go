package db

import (
	"strconv"
	"strings"
)

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{Name: name},
	}
}

// KNN enables k-NN search on the index with the given graph quality parameters.
// Zero values are left to the service defaults.
func (b *IndexBuilder) KNN(efSearch, efConstruct int) *IndexBuilder {
	b.def.Settings = IndexSettings{
		KNN:            true,
		KNNEFSearch:    efSearch,
		KNNEFConstruct: efConstruct,
	}
	return b
}

// Text adds a text field to the mapping.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldText,
	})
	return b
}

// Keyword adds a keyword field to the mapping.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldKeyword,
	})
	return b
}

// Vector adds a knn_vector field with only a dimension; the service picks the method.
func (b *IndexBuilder) Vector(name string, dim int) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:      name,
		Type:      IndexFieldVector,
		VectorDim: dim,
	})
	return b
}

// VectorHNSW adds a knn_vector field indexed with HNSW.
func (b *IndexBuilder) VectorHNSW(
	name string, dim int, space SpaceType, engine Engine, m, efConstruct int,
) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:              name,
		Type:              IndexFieldVector,
		VectorDim:         dim,
		VectorMethod:      MethodHNSW,
		VectorSpace:       space,
		VectorEngine:      engine,
		VectorM:           m,
		VectorEFConstruct: efConstruct,
	})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Fields = append([]IndexField(nil), b.def.Fields...)
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a short debug representation, e.g.
// "PUT my-index knn=true vec:knn_vector(1024,hnsw,l2) body:text".
func (idx *IndexDefinition) String() string {
	parts := []string{"PUT", idx.Name, "knn=" + strconv.FormatBool(idx.Settings.KNN)}
	for i := range idx.Fields {
		f := &idx.Fields[i]
		p := f.Name + ":" + string(f.Type)
		if f.Type == IndexFieldVector {
			attrs := []string{strconv.Itoa(f.VectorDim)}
			if f.VectorMethod != "" {
				attrs = append(attrs, string(f.VectorMethod))
			}
			if f.VectorSpace != "" {
				attrs = append(attrs, string(f.VectorSpace))
			}
			p += "(" + strings.Join(attrs, ",") + ")"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
