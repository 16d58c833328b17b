package chunker

// Syllables returns the cleaned syllable texts of text, in order.
// Non-syllable chunks contribute nothing.
func Syllables(text string) []string {
	var syls []string
	for _, c := range Split(text) {
		if c.Syllable != "" {
			syls = append(syls, c.Syllable)
		}
	}
	return syls
}
