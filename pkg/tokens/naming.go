package tokens

import "fmt"

// ColorVariableName returns "color-<token>".
func ColorVariableName(token string) string {
	return "color-" + token
}

// TextColorVariableName returns "text-color-<token>".
func TextColorVariableName(token string) string {
	return "text-color-" + token
}

// OpacityVariableName returns "color-<token>-<percent>".
func OpacityVariableName(token string, percent int) string {
	return fmt.Sprintf("color-%s-%d", token, percent)
}
