package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// SpaceType is the distance function of a k-NN vector field.
type SpaceType string

const (
	// SpaceL2 is Euclidean distance.
	SpaceL2 SpaceType = "l2"
	// SpaceInnerProduct is inner product similarity.
	SpaceInnerProduct SpaceType = "innerproduct"
	// SpaceCosine is cosine similarity.
	SpaceCosine SpaceType = "cosinesimil"
)

// Engine is the native library that builds the k-NN graph.
type Engine string

const (
	// EngineNMSLIB is the nmslib engine.
	EngineNMSLIB Engine = "nmslib"
	// EngineFAISS is the faiss engine.
	EngineFAISS Engine = "faiss"
	// EngineLucene is the Lucene engine.
	EngineLucene Engine = "lucene"
)

// VectorMethod selects the approximate search method of a vector field.
type VectorMethod string

const (
	// MethodHNSW is hierarchical navigable small world graphs.
	MethodHNSW VectorMethod = "hnsw"
	// MethodIVF is inverted file (faiss only).
	MethodIVF VectorMethod = "ivf"
)

// IndexFieldType enumerates supported mapping field types.
type IndexFieldType string

const (
	// IndexFieldText is an analyzed full-text field.
	IndexFieldText IndexFieldType = "text"
	// IndexFieldKeyword is an exact-match field.
	IndexFieldKeyword IndexFieldType = "keyword"
	// IndexFieldVector is a dense k-NN vector field.
	IndexFieldVector IndexFieldType = "knn_vector"
)

// IndexSettings are the index-level k-NN settings.
type IndexSettings struct {
	KNN            bool
	KNNEFSearch    int // knn.algo_param.ef_search
	KNNEFConstruct int // knn.algo_param.ef_construction
}

// IndexField describes a single property in the index mapping.
type IndexField struct {
	Name string
	Type IndexFieldType

	// knn_vector options
	VectorDim         int
	VectorMethod      VectorMethod
	VectorSpace       SpaceType
	VectorEngine      Engine
	VectorM           int // HNSW m: max edges per node
	VectorEFConstruct int // HNSW ef_construction: build-time candidate list size
}

// IndexDefinition is a complete index definition used to create an index.
// Fields keep their declaration order on the wire.
type IndexDefinition struct {
	Name     string
	Settings IndexSettings
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIndexName(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case IndexFieldText, IndexFieldKeyword:
		case IndexFieldVector:
			if f.VectorDim <= 0 {
				return errors.New("vector field requires positive dimension")
			}
		default:
			return errors.New("unknown field type: " + string(f.Type))
		}
	}

	return nil
}

// IsValidIndexName reports whether s is an acceptable OpenSearch index name:
// lowercase, none of \ / * ? " < > | space , # :, not starting with _, - or +.
func IsValidIndexName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	if strings.ContainsAny(s[:1], "_-+") {
		return false
	}
	if strings.ContainsAny(s, `\/*?"<>| ,#:`) {
		return false
	}
	return strings.ToLower(s) == s
}

// MarshalJSON renders the create-index request body. Output is deterministic:
// settings come in a fixed order and mapping properties in field order.
func (idx *IndexDefinition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"settings":{"index":{`)
	buf.WriteString(`"knn":` + strconv.FormatBool(idx.Settings.KNN))
	if idx.Settings.KNNEFSearch > 0 {
		buf.WriteString(`,"knn.algo_param.ef_search":` + strconv.Itoa(idx.Settings.KNNEFSearch))
	}
	if idx.Settings.KNNEFConstruct > 0 {
		buf.WriteString(`,"knn.algo_param.ef_construction":` + strconv.Itoa(idx.Settings.KNNEFConstruct))
	}
	buf.WriteString(`}},"mappings":{"properties":{`)

	for i := range idx.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(idx.Fields[i].Name)
		if err != nil {
			return nil, err
		}
		prop, err := json.Marshal(propertyOf(&idx.Fields[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(prop)
	}

	buf.WriteString(`}}}`)
	return buf.Bytes(), nil
}

type property struct {
	Type      IndexFieldType `json:"type"`
	Dimension int            `json:"dimension,omitempty"`
	Method    *methodJSON    `json:"method,omitempty"`
}

type methodJSON struct {
	Name       VectorMethod `json:"name"`
	SpaceType  SpaceType    `json:"space_type,omitempty"`
	Engine     Engine       `json:"engine,omitempty"`
	Parameters *paramsJSON  `json:"parameters,omitempty"`
}

type paramsJSON struct {
	EFConstruction int `json:"ef_construction,omitempty"`
	M              int `json:"m,omitempty"`
}

func propertyOf(f *IndexField) property {
	p := property{Type: f.Type}
	if f.Type != IndexFieldVector {
		return p
	}

	p.Dimension = f.VectorDim
	if f.VectorMethod == "" {
		return p
	}

	m := &methodJSON{
		Name:      f.VectorMethod,
		SpaceType: f.VectorSpace,
		Engine:    f.VectorEngine,
	}
	if f.VectorEFConstruct > 0 || f.VectorM > 0 {
		m.Parameters = &paramsJSON{EFConstruction: f.VectorEFConstruct, M: f.VectorM}
	}
	p.Method = m
	return p
}
