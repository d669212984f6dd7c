package common

// Pluralize returns word in the plural unless n is exactly one.
func Pluralize(word string, n int) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
