package llm

import (
	"fmt"
	"strings"
)

// buildPrompt embeds the extracted fragments into the fixed 13-step
// verification checklist and asks for a structured confidence response.
func buildPrompt(fragments []string) string {
	return fmt.Sprintf(`Please validate the following OCR results with 13-step verification:
%s

Perform these checks in sequence:
1. Character-level verification (check each character for accuracy)
2. Number sequence validation (verify numerical sequences)
3. Format pattern matching (validate document structure)
4. Checksum verification (verify numerical consistency)
5. Context-based validation (ensure logical content)
6. Cross-reference check (verify related fields)
7. Pattern consistency (check formatting consistency)
8. Special character validation (verify symbols and special chars)
9. Field boundary verification (check field separations)
10. Data type conformity (validate data types)
11. Range validation (verify value ranges)
12. Historical comparison (compare with typical patterns)
13. Final integrity check (overall validation)

Return a JSON object with confidence scores and validation status.`,
		strings.Join(fragments, "\n"))
}
