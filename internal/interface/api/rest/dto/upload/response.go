package upload

type ChunkResponse struct {
	Success     bool   `json:"success"`
	ChunkURL    string `json:"chunkUrl"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
}
