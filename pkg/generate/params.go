package generate

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/placeholder"
)

// Params are the user-supplied inputs of one generation run.
type Params struct {
	// APIName in PascalCase (UserService, PaymentGateway)
	APIName string
	// EndpointPath is the relative request path (api/v1/users)
	EndpointPath string
	// BaseURL is the absolute service URL (https://api.example.com/)
	BaseURL string
	// ServiceIdentifier keys the YAML config block; derived from APIName
	// when empty
	ServiceIdentifier string
	// Credentials lists credential field names; empty means none
	Credentials []string
}

// DefaultServiceIdentifier derives the kebab-case YAML identifier from a
// PascalCase API name: UserService -> user-service-api.
func DefaultServiceIdentifier(apiName string) string {
	return placeholder.Kebab(apiName) + "-api"
}

// Validate checks required fields and their shapes.
func (p *Params) Validate() error {
	if p.APIName == "" {
		return errors.New(errors.ErrInvalidInput, "api name is required")
	}
	first := []rune(p.APIName)[0]
	if !unicode.IsUpper(first) || !unicode.IsLetter(first) {
		return errors.Newf(errors.ErrInvalidInput, "api name %q must be PascalCase", p.APIName)
	}
	for _, r := range p.APIName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.Newf(errors.ErrInvalidInput, "api name %q must contain only letters and digits", p.APIName)
		}
	}

	if p.EndpointPath == "" {
		return errors.New(errors.ErrInvalidInput, "endpoint path is required")
	}

	if p.BaseURL == "" {
		return errors.New(errors.ErrInvalidInput, "base url is required")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.Newf(errors.ErrInvalidInput, "base url %q must be an absolute http(s) URL", p.BaseURL)
	}

	for _, field := range p.Credentials {
		if strings.TrimSpace(field) == "" {
			return errors.New(errors.ErrInvalidInput, "credential field names must be non-empty")
		}
	}

	return nil
}

// Derive fills the fields computed from the required inputs.
func (p *Params) Derive() {
	if p.ServiceIdentifier == "" {
		p.ServiceIdentifier = DefaultServiceIdentifier(p.APIName)
	}
}

// ParseCredentials splits a comma-separated credential list, dropping
// empty entries the way the interactive prompt does.
func ParseCredentials(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
