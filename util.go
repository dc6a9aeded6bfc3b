package alconna

import "reflect"

// reflectTypeName returns a stable string key for v's dynamic type,
// used to index the preprocessor/filter-out maps keyed by "type".
func reflectTypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
