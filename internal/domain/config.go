package domain

// KeyPrefix namespaces all recipedex keys in the shared store.
const KeyPrefix = "recipedex:"

// VectorConfig describes embedding vector parameters.
type VectorConfig struct {
	Dimensions int
}

// DefaultVectorConfig returns the default vector parameters
// (text-embedding-3-small sized).
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{Dimensions: 1536}
}
