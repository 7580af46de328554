package agf

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	SemErrDuplicateEntity   = newSemanticError("duplicate entity")
	SemErrInvalidEntityName = newSemanticError("an entity name must match [a-z][a-z0-9_]*")
)
