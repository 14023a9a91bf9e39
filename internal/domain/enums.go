package domain

// Invoice status values. StatusUpcoming is the ingestion default; only the
// AI extractor or an explicit transition ever changes it.
const (
	StatusUpcoming = "Upcoming"
	StatusPaid     = "Paid"
)

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
