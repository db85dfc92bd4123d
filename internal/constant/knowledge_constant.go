package constant

import "github.com/google/uuid"

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// Document kinds, assigned once at ingestion from the file extension.
	DocumentKindPDF  = "PDF"
	DocumentKindCSV  = "CSV"
	DocumentKindWeb  = "WEB"
	DocumentKindText = "TEXT"

	// Document lifecycle. Transitions are forward-only:
	// PENDING -> PROCESSING -> COMPLETED | ERROR.
	DocumentStatusPending    = "PENDING"
	DocumentStatusProcessing = "PROCESSING"
	DocumentStatusCompleted  = "COMPLETED"
	DocumentStatusError      = "ERROR"
)

// Reserved system partitions. "all" is a virtual view: it matches every
// document but is never a valid membership value. "uncategorized" is the
// fallback bucket for documents created without an explicit target.
var (
	PartitionAllId           = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	PartitionUncategorizedId = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

const (
	PartitionAllName           = "All Sources"
	PartitionUncategorizedName = "Uncategorized"
)

// Event types published on the NATS bus after the summarization consumer
// patches a document. The sync service relays them to WebSocket clients.
const (
	EventDocumentCreated       = "DOCUMENT_CREATED"
	EventDocumentSummarized    = "DOCUMENT_SUMMARIZED"
	EventDocumentSummaryFailed = "DOCUMENT_SUMMARY_FAILED"
	EventDocumentDeleted       = "DOCUMENT_DELETED"
)

const (
	// SummaryMaxChars bounds the short classification label produced by the
	// remote model for each ingested document.
	SummaryMaxChars = 30
)
