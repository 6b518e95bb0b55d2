package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeConfiguration      ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used at call sites throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeUnauthorized   = ErrCodeUnauthorized
	CodeForbidden      = ErrCodeForbidden
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")

	// Domain specific aliases
	CodeSpacNotFound       = ErrCodeSpacNotFound
	CodeFilingTypeUnknown  = ErrCodeFilingTypeUnknown
	CodeFilerStatusUnknown = ErrCodeFilerStatusUnknown
)

// Calendar Module Error Codes
const (
	ErrCodeCalendarInvalidDate  ErrorCode = "CAL_001"
	ErrCodeCalendarInvalidRange ErrorCode = "CAL_002"
	ErrCodeCalendarInvalidCount ErrorCode = "CAL_003"
)

// Filing Rule Catalog Error Codes
const (
	ErrCodeFilingTypeUnknown      ErrorCode = "FIL_001"
	ErrCodeFilerStatusUnknown     ErrorCode = "FIL_002"
	ErrCodeFilingDefMissing       ErrorCode = "FIL_003"
	ErrCodeFilingDefInvalid       ErrorCode = "FIL_004"
	ErrCodeDeadlineBaseInvalid    ErrorCode = "FIL_005"
	ErrCodeDeadlineRequiresReview ErrorCode = "FIL_006"
)

// Checklist Module Error Codes
const (
	ErrCodeChecklistTemplateMissing ErrorCode = "CHK_001"
	ErrCodeChecklistCycle           ErrorCode = "CHK_002"
	ErrCodeChecklistDanglingDep     ErrorCode = "CHK_003"
	ErrCodeChecklistItemUnknown     ErrorCode = "CHK_004"
)

// SPAC Entity Module Error Codes
const (
	ErrCodeSpacNotFound      ErrorCode = "SPAC_001"
	ErrCodeSpacStatusInvalid ErrorCode = "SPAC_002"
	ErrCodeSpacSnapshotStale ErrorCode = "SPAC_003"
	ErrCodeSpacAlreadyExists ErrorCode = "SPAC_004"
)

// Data Source (filings index) Error Codes
const (
	ErrCodeDataSourceUnavailable ErrorCode = "SRC_001"
	ErrCodeDataSourceRateLimited ErrorCode = "SRC_002"
	ErrCodeDataSourceParseError  ErrorCode = "SRC_003"
)

// Infrastructure code aliases (kept so adapter packages read uniformly).
const (
	CodeDBConnectionError = ErrCodeDatabaseError
	CodeDatabaseError     = ErrCodeDatabaseError
	CodeDBQueryError      = ErrCodeDatabaseError
	CodeCacheError        = ErrCodeCacheError
	CodeMessageQueueError = ErrCodeInternal
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeConfiguration:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeCalendarInvalidDate:  http.StatusBadRequest,
	ErrCodeCalendarInvalidRange: http.StatusBadRequest,
	ErrCodeCalendarInvalidCount: http.StatusBadRequest,

	ErrCodeFilingTypeUnknown:      http.StatusBadRequest,
	ErrCodeFilerStatusUnknown:     http.StatusBadRequest,
	ErrCodeFilingDefMissing:       http.StatusInternalServerError,
	ErrCodeFilingDefInvalid:       http.StatusInternalServerError,
	ErrCodeDeadlineBaseInvalid:    http.StatusBadRequest,
	ErrCodeDeadlineRequiresReview: http.StatusUnprocessableEntity,

	ErrCodeChecklistTemplateMissing: http.StatusNotFound,
	ErrCodeChecklistCycle:           http.StatusInternalServerError,
	ErrCodeChecklistDanglingDep:     http.StatusInternalServerError,
	ErrCodeChecklistItemUnknown:     http.StatusBadRequest,

	ErrCodeSpacNotFound:      http.StatusNotFound,
	ErrCodeSpacStatusInvalid: http.StatusBadRequest,
	ErrCodeSpacSnapshotStale: http.StatusConflict,
	ErrCodeSpacAlreadyExists: http.StatusConflict,

	ErrCodeDataSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeDataSourceRateLimited: http.StatusTooManyRequests,
	ErrCodeDataSourceParseError:  http.StatusBadGateway,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeConfiguration:      "invalid configuration",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeCalendarInvalidDate:  "invalid calendar date",
	ErrCodeCalendarInvalidRange: "invalid date range",
	ErrCodeCalendarInvalidCount: "business day count must be non-negative",

	ErrCodeFilingTypeUnknown:      "unknown filing type",
	ErrCodeFilerStatusUnknown:     "unknown filer status",
	ErrCodeFilingDefMissing:       "filing definition missing",
	ErrCodeFilingDefInvalid:       "filing definition invalid",
	ErrCodeDeadlineBaseInvalid:    "deadline base date invalid",
	ErrCodeDeadlineRequiresReview: "deadline requires manual review",

	ErrCodeChecklistTemplateMissing: "checklist template not found",
	ErrCodeChecklistCycle:           "checklist dependencies contain a cycle",
	ErrCodeChecklistDanglingDep:     "checklist dependency references unknown item",
	ErrCodeChecklistItemUnknown:     "checklist item not found",

	ErrCodeSpacNotFound:      "SPAC not found",
	ErrCodeSpacStatusInvalid: "invalid SPAC lifecycle status",
	ErrCodeSpacSnapshotStale: "SPAC snapshot is stale",
	ErrCodeSpacAlreadyExists: "SPAC already exists",

	ErrCodeDataSourceUnavailable: "filings index unavailable",
	ErrCodeDataSourceRateLimited: "filings index rate limited",
	ErrCodeDataSourceParseError:  "failed to parse filings index response",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
