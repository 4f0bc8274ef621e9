package domain

// Result is the outcome of one execution request. Execution state is
// request-scoped only; nothing here is persisted.
type Result struct {
	// Output is the captured stdout, verbatim. Empty output is valid.
	Output string `json:"output"`
	// Language the source was dispatched as.
	Language string `json:"language,omitempty"`
}
