package domain

// Request is one text-generation call. The core treats generation as an
// opaque prompt-in/text-out capability; providers map these fields onto
// their own protocol.
type Request struct {
	System          string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}
