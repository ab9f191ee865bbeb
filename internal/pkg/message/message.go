package message

const (
	InvalidInput = "Invalid input."
	InvalidKey   = "Invalid admin key/token."
	NoData       = "No data available. Please try again later."
	ServerError  = "Something went wrong."
	EnvErrFmt    = "environment variable is not set: %s"
)
