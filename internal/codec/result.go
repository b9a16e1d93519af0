package codec

// Messages returned at the text boundary.
const (
	msgEncodeFailed       = "加密失败："
	msgMalformed          = "无法解密：格式不正确"
	msgCredentialMismatch = "无法解密：凭证不匹配"
	msgNotFound           = "无法解密：未找到原始内容（当前会话中可能未加密过此内容）"
)

// Status classifies the outcome of a decode.
type Status int

const (
	// StatusOK means the plaintext was found.
	StatusOK Status = iota
	// StatusMalformed means the input does not have the prefix/separator shape.
	StatusMalformed
	// StatusCredentialMismatch means the embedded credential differs from the supplied one.
	StatusCredentialMismatch
	// StatusNotFound means the input is well formed but nothing was recorded for it.
	StatusNotFound
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMalformed:
		return "malformed"
	case StatusCredentialMismatch:
		return "credential_mismatch"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// EncodeResult is the output of a successful encode.
type EncodeResult struct {
	// Symbolic is the glyph text grouped in clusters of five.
	Symbolic string
	// Formatted is the complete decorated output.
	Formatted string
}

// DecodeResult is the output of a decode. Text holds the plaintext when
// Status is StatusOK and a human-readable explanation otherwise.
type DecodeResult struct {
	Status Status
	Text   string
}

// OK reports whether the plaintext was recovered.
func (r DecodeResult) OK() bool {
	return r.Status == StatusOK
}

func malformed() DecodeResult {
	return DecodeResult{Status: StatusMalformed, Text: msgMalformed}
}

func credentialMismatch() DecodeResult {
	return DecodeResult{Status: StatusCredentialMismatch, Text: msgCredentialMismatch}
}

func notFound() DecodeResult {
	return DecodeResult{Status: StatusNotFound, Text: msgNotFound}
}

// Message returns the user-facing explanation for a failed decode status and
// "" for StatusOK.
func (s Status) Message() string {
	switch s {
	case StatusMalformed:
		return msgMalformed
	case StatusCredentialMismatch:
		return msgCredentialMismatch
	case StatusNotFound:
		return msgNotFound
	default:
		return ""
	}
}
