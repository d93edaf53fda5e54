package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBMigrateError
	DBWriteError

	// Checkpoint store errors
	StateStoreOpenError
	StateStoreWriteError
	StateStoreReadError
	StateParseError

	// Catalog errors
	CatalogParseError
	CatalogUnknownStreamError
	CatalogWriteError

	// Report client errors
	ReportRequestError
	ReportStatusError
	ReportCSVError
	BookmarkParseError

	// Cleaning errors
	MalformedLocatorError
	FieldCoercionError
	RowOrdinalError

	// Sync errors
	UnknownStreamError
	SinkWriteError
	SyncCancelledError

	// Configuration errors
	ConfigFileError
)
