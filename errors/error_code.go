package errors

// ErrorCode identifies an application failure independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Interview session errors
	ErrorCode_INTERVIEW_INVALID_STATE      ErrorCode = 2000
	ErrorCode_INTERVIEW_EMPTY_ANSWER       ErrorCode = 2001
	ErrorCode_INTERVIEW_NO_QUESTIONS       ErrorCode = 2002
	ErrorCode_INTERVIEW_SESSION_NOT_FOUND  ErrorCode = 2003
	ErrorCode_INTERVIEW_SESSION_BUSY       ErrorCode = 2004
	ErrorCode_INTERVIEW_INVALID_CANDIDATE  ErrorCode = 2005
	ErrorCode_INTERVIEW_DUPLICATE_QUESTION ErrorCode = 2006

	// Realtime errors
	ErrorCode_REALTIME_UNKNOWN_CONNECTION ErrorCode = 3000

	// Integration errors
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4000
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                      "HTTP_OK",
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                    "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:              "INVALID_PAYLOAD",
	ErrorCode_INTERVIEW_INVALID_STATE:      "INTERVIEW_INVALID_STATE",
	ErrorCode_INTERVIEW_EMPTY_ANSWER:       "INTERVIEW_EMPTY_ANSWER",
	ErrorCode_INTERVIEW_NO_QUESTIONS:       "INTERVIEW_NO_QUESTIONS",
	ErrorCode_INTERVIEW_SESSION_NOT_FOUND:  "INTERVIEW_SESSION_NOT_FOUND",
	ErrorCode_INTERVIEW_SESSION_BUSY:       "INTERVIEW_SESSION_BUSY",
	ErrorCode_INTERVIEW_INVALID_CANDIDATE:  "INTERVIEW_INVALID_CANDIDATE",
	ErrorCode_INTERVIEW_DUPLICATE_QUESTION: "INTERVIEW_DUPLICATE_QUESTION",
	ErrorCode_REALTIME_UNKNOWN_CONNECTION:  "REALTIME_UNKNOWN_CONNECTION",
	ErrorCode_INTEGRATION_CACHE_FAILED:     "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:   "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:              "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
