package model

import "fmt"

// ExternalToolError wraps a failure of an external collaborator such as the
// table extractor or the ledger backend.
type ExternalToolError struct {
	Tool string
	Op   string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Tool, e.Op, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
