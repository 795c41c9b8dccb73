package parser

// isComparisonOperator checks if a word is one of the filter operators
func isComparisonOperator(s string) bool {
	return s == "=" || s == "<" || s == ">"
}
