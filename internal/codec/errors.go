package codec

import "errors"

// ErrAlgorithmUnavailable is returned by Encode when the configured digest
// algorithm cannot be found. The registry is left untouched.
var ErrAlgorithmUnavailable = errors.New("digest algorithm unavailable")
