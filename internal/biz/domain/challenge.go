package domain

// Challenge is one programming challenge fetched from the challenge feed
type Challenge struct {
	Title       string
	Description string
	Difficulty  string
	TestCases   []TestCase
	Solutions   map[string]string // language -> source
}

// TestCase is one example input/output pair
type TestCase struct {
	Input  string
	Output string
}

// Solution returns the solution for the preferred language, falling back to
// any available one
func (c *Challenge) Solution(lang string) string {
	if sol, ok := c.Solutions[lang]; ok {
		return sol
	}
	for _, sol := range c.Solutions {
		return sol
	}
	return ""
}

// FirstTestCase returns the first example, or a zero value if none exist
func (c *Challenge) FirstTestCase() TestCase {
	if len(c.TestCases) == 0 {
		return TestCase{}
	}
	return c.TestCases[0]
}
