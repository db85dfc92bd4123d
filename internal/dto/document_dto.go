package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadFilePayload carries one file of a batch upload. Data is the raw file
// content, base64-encoded by the client.
type UploadFilePayload struct {
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data" validate:"required"`
}

type UploadDocumentsRequest struct {
	PartitionId *uuid.UUID          `json:"partition_id"`
	Files       []UploadFilePayload `json:"files" validate:"required,min=1,dive"`
}

type AddLinkRequest struct {
	URL         string     `json:"url" validate:"required,url"`
	PartitionId *uuid.UUID `json:"partition_id"`
}

type DocumentResponse struct {
	Id          uuid.UUID  `json:"id"`
	PartitionId uuid.UUID  `json:"partition_id"`
	Position    int        `json:"position"`
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	SourceURL   *string    `json:"source_url,omitempty"`
	SizeLabel   *string    `json:"size_label,omitempty"`
	Status      string     `json:"status"`
	Summary     *string    `json:"summary,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ShowDocumentResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

type MoveDocumentRequest struct {
	Id          uuid.UUID `json:"-"`
	PartitionId uuid.UUID `json:"partition_id" validate:"required"`
}

type MoveDocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	PartitionId uuid.UUID `json:"partition_id"`
}

// SummarizeDocumentMessage is the watermill payload that hands a freshly
// ingested document to the summarization consumer.
type SummarizeDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	MimeType   string    `json:"mime_type"`
	RawBase64  string    `json:"raw_base64"`
}
