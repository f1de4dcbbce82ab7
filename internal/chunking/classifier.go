package chunking

import (
	"regexp"
	"strings"
)

// The classifier is a priority-ordered set of deterministic pattern checks.
// First matching rule wins; no match falls back to the generic category.
// It is stateless and never errors: empty input maps to generic.

var (
	// resolutionWords matches troubleshooting vocabulary anywhere in the text.
	resolutionWords = regexp.MustCompile(`(?i)\b(resolve[sd]?|resolution|issue|problem|error|fix(?:es|ed)?|troubleshoot\w*|diagnos\w*)\b`)

	// stepsHeading matches headings like "Steps to resolve" or "Troubleshooting steps".
	stepsHeading = regexp.MustCompile(`(?im)^#{1,6}\s+.*\b(steps?\s+to\s+(resolve|fix|reproduce)|troubleshoot\w*|problem:)`)

	// stepLine matches explicit step markers ("Step 1", "Step 2: ...").
	stepLine = regexp.MustCompile(`(?im)^\s*(?:#{1,6}\s+)?step\s+\d+`)

	// policyWords matches policy-document vocabulary.
	policyWords = regexp.MustCompile(`(?i)\b(policy|policies|section\s+\d|article\s+\d|clause|compliance|procedure[s]?|regulation\w*)\b`)
)

// Classify assigns a document to one of the closed set of categories based on
// its text alone. The decision is purely rule based:
//
//  1. At least two fenced code blocks -> api-reference.
//  2. A numbered step list plus resolution vocabulary, or a "Steps to
//     resolve"-style heading -> troubleshooting.
//  3. Headings plus policy vocabulary -> policy.
//  4. Anything else -> generic.
func Classify(input string) Category {
	if strings.TrimSpace(input) == "" {
		return CategoryGeneric
	}

	sig := Analyze(input)
	return classifyFromSignals(input, sig)
}

func classifyFromSignals(input string, sig Signals) Category {
	if sig.FencedCodeBlocks >= 2 {
		return CategoryAPIReference
	}

	numberedSteps := sig.OrderedListItems >= 2 || len(stepLine.FindAllStringIndex(input, 3)) >= 2
	if (numberedSteps && resolutionWords.MatchString(input)) || stepsHeading.MatchString(input) {
		return CategoryTroubleshooting
	}

	if sig.Headings >= 1 && policyWords.MatchString(input) {
		return CategoryPolicy
	}

	return CategoryGeneric
}
