package conv

// ToAnySlice converts a []T to []any.
func ToAnySlice[T any](vs []T) []any {
	if vs == nil {
		return nil
	}
	if a, ok := any(vs).([]any); ok {
		return a
	}
	ret := make([]any, len(vs))
	for i, v := range vs {
		ret[i] = v
	}
	return ret
}

// ToNumberSlice converts []any to []T, an element with an invalid conversion
// becomes a zero T.
func ToNumberSlice[T Numbers](vs []any) []T {
	var z T
	ret := make([]T, len(vs))
	for i, v := range vs {
		ret[i] = Conv(z, v)
	}
	return ret
}
