package log

const (
	// FldFile is the name of the log field for storing file name information
	FldFile = "file"
	// FldPath is the name of the log field for storing path name information
	FldPath = "path"
	// FldTransport is the name of the log field for storing a transport name
	FldTransport = "transport"
	// FldVersion is the version number of the application
	FldVersion = "ver"
	// FldIP is the IP address used in the log entry
	FldIP = "ip"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldUser is the ID of the user a tally or void is made for
	FldUser = "user"
	// FldArticle is the ID of the article being tallied
	FldArticle = "article"
	// FldStreque is the ID of a streque being voided
	FldStreque = "streque"
	// FldTransaction is the ID of a transaction being voided
	FldTransaction = "transaction"
	// FldFilter is a filter query typed into one of the lists
	FldFilter = "filter"
	// FldCount is the number of entities involved in an operation
	FldCount = "count"
	// FldURI is the upstream URI a request is sent to
	FldURI = "uri"
	// FldStatus is the HTTP status returned by the upstream server
	FldStatus = "status"
	// FldDuration is the time an operation took
	FldDuration = "duration"
)
