package agf

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	SynErrInvalidChar = newSyntaxError("invalid character")

	// syntax errors
	SynErrEmptyGrammar      = newSyntaxError("a grammar must have at least one element")
	SynErrAltNotEnclosed    = newSyntaxError("an alternation must be enclosed in ( ) or [ ]")
	SynErrAltLackOfOperand  = newSyntaxError("an alternation must not have an empty alternative")
	SynErrGroupNoElem       = newSyntaxError("a group must include at least one element")
	SynErrGroupUnclosed     = newSyntaxError("unclosed group")
	SynErrGroupNoInitiator  = newSyntaxError(") needs preceding (")
	SynErrOptUnclosed       = newSyntaxError("unclosed optional group")
	SynErrOptNoInitiator    = newSyntaxError("] needs preceding [")
	SynErrEntityNoName      = newSyntaxError("an entity reference needs a name")
	SynErrEntityUnclosed    = newSyntaxError("unclosed entity reference")
	SynErrEntityNoInitiator = newSyntaxError("} needs preceding {")
	SynErrEntityInvalidName = newSyntaxError("an entity name must match [a-z][a-z0-9_]*")
	SynErrUnknownEntity     = newSyntaxError("unknown entity")
	SynErrRangeInvalidForm  = newSyntaxError("a range must have the form $(min,max,step)")
	SynErrRangeInvalidBound = newSyntaxError("range bounds and step must be integers")
	SynErrRangeInvalidOrder = newSyntaxError("the lower bound of a range must not exceed the upper bound")
	SynErrRangeInvalidStep  = newSyntaxError("the step of a range must be positive")
)
