package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// SceneKey maps a number-row key code ('1'..'9') to a zero-based scene index.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - int: the scene index
//   - bool: false if the key is not a number-row digit 1-9
func SceneKey(keyCode uint32) (int, bool) {
	if keyCode < Key1 || keyCode > Key9 {
		return 0, false
	}
	return int(keyCode - Key1), true
}
