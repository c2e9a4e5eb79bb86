package variables

import "github.com/eugenenazirov/replace-tokens/internal/input"

// Sources carries the raw text of every variable source.
type Sources struct {
	JSON       string
	SecretJSON string
	Lines      []string
}

// Resolve parses every source and merges them with precedence
// JSON < secret JSON < line list.
func Resolve(src Sources) (*Set, []Warning, error) {
	plain, err := ParseJSON(input.VariablesJSON, src.JSON)
	if err != nil {
		return nil, nil, err
	}

	secret, err := ParseJSON(input.VariablesSecretJSON, src.SecretJSON)
	if err != nil {
		return nil, nil, err
	}

	list, warnings := ParseList(src.Lines)

	return Merge(plain, secret, list), warnings, nil
}
