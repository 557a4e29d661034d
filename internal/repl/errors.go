package repl

import "fmt"

type ReplError struct {
	Kind    string
	Message string
}

func (e ReplError) Error() string {
	return fmt.Sprintf("repl error (%v): %v", e.Kind, e.Message)
}

func noProgramLoaded() error {
	return ReplError{
		Kind:    "NoProgramLoaded",
		Message: "no program loaded; use #load <file> or enter a rule",
	}
}

func usage(message string) error {
	return ReplError{Kind: "Usage", Message: message}
}
