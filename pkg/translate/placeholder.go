package translate

import (
	"fmt"
	"strings"
)

// M carries placeholder values for message definitions.
type M map[string]any

// Replace substitutes {{name}} placeholders in a definition with values
// from the map. Unknown placeholders stay in place.
//
// Example:
//
//	definition: "Welcome back, {{name}}!"
//	values: M{"name": "pat"}
//	returns: "Welcome back, pat!"
func Replace(definition string, values M) string {
	if len(values) == 0 {
		return definition
	}

	result := definition
	for key, value := range values {
		result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}

	return result
}

func replaceMerged(definition string, values ...M) string {
	switch len(values) {
	case 0:
		return definition
	case 1:
		return Replace(definition, values[0])
	}

	merged := make(M)
	for _, v := range values {
		for key, value := range v {
			merged[key] = value
		}
	}
	return Replace(definition, merged)
}
