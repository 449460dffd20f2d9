package errors

// Error codes returned across the boundary. 4xxx codes blame the caller's
// input, 5xxx codes blame the environment or the library.
const (
	CodeInvalidKey            = 4001
	CodeDecode                = 4002
	CodeMalformedEnvelope     = 4003
	CodeInvalidConfig         = 4004
	CodeAuthenticationFailure = 4011

	CodeInternal          = 5000
	CodeEncryptionFailure = 5001
	CodeEntropyFailure    = 5002
)

// 4xxx caller errors
func InvalidKey(format string, args ...any) *Error {
	return New(CodeInvalidKey, format, args...)
}

func Decode(format string, args ...any) *Error {
	return New(CodeDecode, format, args...)
}

func MalformedEnvelope(format string, args ...any) *Error {
	return New(CodeMalformedEnvelope, format, args...)
}

func InvalidConfig(format string, args ...any) *Error {
	return New(CodeInvalidConfig, format, args...)
}

func AuthenticationFailure(format string, args ...any) *Error {
	return New(CodeAuthenticationFailure, format, args...)
}

// 5xxx environment errors
func Internal(format string, args ...any) *Error {
	return New(CodeInternal, format, args...)
}

func EncryptionFailure(format string, args ...any) *Error {
	return New(CodeEncryptionFailure, format, args...)
}

func EntropyFailure(format string, args ...any) *Error {
	return New(CodeEntropyFailure, format, args...)
}

// IsCallerError reports whether code blames the caller's input.
func IsCallerError(code int) bool {
	return code >= 4000 && code < 5000
}
