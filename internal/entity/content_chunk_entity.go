package entity

// ContentChunk is one retrievable slice of study material. The corpus is
// read-only from this service's point of view; ingestion happens offline.
type ContentChunk struct {
	Id         int64
	MaterialId string
	ChunkText  string
	Level      string
	SkillType  string
	Metadata   map[string]any
}
