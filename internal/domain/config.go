package domain

// VectorSchema describes the vector index a Bedrock Knowledge Base writes into.
type VectorSchema struct {
	VectorField        string
	TextField          string
	MetadataField      string
	Dimensions         int
	SpaceType          string
	Engine             string
	HNSWM              int
	HNSWEFConstruction int
	KNNEFSearch        int
	KNNEFConstruction  int
}

// DefaultVectorSchema returns the Knowledge Base defaults, sized for Titan Text Embeddings V2 (1024 dims).
func DefaultVectorSchema() VectorSchema {
	return VectorSchema{
		VectorField:        "bedrock-knowledge-base-default-vector",
		TextField:          "AMAZON_BEDROCK_TEXT_CHUNK",
		MetadataField:      "AMAZON_BEDROCK_METADATA",
		Dimensions:         1024,
		SpaceType:          "l2",
		Engine:             "nmslib",
		HNSWM:              16,
		HNSWEFConstruction: 512,
		KNNEFSearch:        512,
		KNNEFConstruction:  512,
	}
}
