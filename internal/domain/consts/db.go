package consts

// Tables
const (
	DBDownloads = "downloads"
)

// Downloads
const (
	QDLID        = "id"
	QDLRunID     = "run_id"
	QDLURL       = "url"
	QDLTitle     = "title"
	QDLStatus    = "status"
	QDLDetail    = "detail"
	QDLFilePath  = "file_path"
	QDLDuration  = "duration_secs"
	QDLFileSize  = "file_size"
	QDLUpload    = "upload_date"
	QDLCreatedAt = "created_at"
)
