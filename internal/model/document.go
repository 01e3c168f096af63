package model

const (
	ContentTypeMarkdown = "markdown"
	ContentTypeText     = "text"
	ContentTypeHTML     = "html"
	ContentTypeWeb      = "web"
	ContentTypeSocial   = "social"
)

const (
	SourceTypePaste     = "paste"
	SourceTypeUpload    = "upload"
	SourceTypeURL       = "url"
	SourceTypeExtension = "extension"
)

type Document struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Title             string `json:"title"`
	ContentType       string `json:"content_type"`
	SourceType        string `json:"source_type"`
	RawContent        string `json:"raw_content"`
	NormalizedContent string `json:"normalized_content"`
	SourceURL         string `json:"source_url"`
	SourceName        string `json:"source_name"`
	Author            string `json:"author"`
	WordCount         int    `json:"word_count"`
	CharCount         int    `json:"char_count"`
	ReadTimeMinutes   int    `json:"estimated_read_time"`
	IsProcessed       bool   `json:"is_processed"`
	ProcessingError   string `json:"processing_error"`
	Ctime             int64  `json:"created_at"`
	IngestedAt        int64  `json:"ingested_at"`
	Mtime             int64  `json:"mtime"`
}

type ContentChunk struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
	WordCount  int    `json:"word_count"`
	CharCount  int    `json:"char_count"`
}
