package rules

import "github.com/olehluchkiv/phpfix/internal/fixer"

// NewRegistry returns a registry holding every shipped rule.
func NewRegistry() (*fixer.Registry, error) {
	reg := fixer.NewRegistry()
	for _, rule := range []fixer.Rule{
		NewVoidReturn(),
		NewPhpdocNoVoidReturn(),
	} {
		if err := reg.Register(rule); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
