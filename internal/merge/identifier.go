package merge

import "regexp"

// identifierRules are the accepted spellings of a style ID column, strongest
// first. Within a rule the leftmost matching column wins.
var identifierRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^style[_\s\-]?id$`),
	regexp.MustCompile(`(?i)^sku$`),
	regexp.MustCompile(`(?i)styleid`),
}

// ResolveIdentifier finds the style ID column among columns. It reports false
// when no column matches any rule.
func ResolveIdentifier(columns []string) (string, bool) {
	for _, rule := range identifierRules {
		for _, col := range columns {
			if rule.MatchString(col) {
				return col, true
			}
		}
	}
	return "", false
}
