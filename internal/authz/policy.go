// Package authz holds the route authorization table: (HTTP method, path
// pattern) → minimum role.
package authz

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"storefront/internal/domain"
)

const RolePublic = "PUBLIC"

//go:embed policy.yaml
var defaultPolicy []byte

type Rule struct {
	Method  string `yaml:"method"`
	Pattern string `yaml:"pattern"`
	Role    string `yaml:"role"`
}

type Policy struct {
	Rules []Rule `yaml:"rules"`
}

// Default returns the built-in policy.
func Default() *Policy {
	p, err := Parse(defaultPolicy)
	if err != nil {
		panic(fmt.Sprintf("authz: embedded policy: %v", err))
	}
	return p
}

// Load reads a policy file; an empty path yields the built-in policy.
func Load(file string) (*Policy, error) {
	if file == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	for i := range p.Rules {
		r := &p.Rules[i]
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
		if r.Method == "" {
			r.Method = "*"
		}
		if _, err := path.Match(r.Pattern, "/"); err != nil {
			return nil, fmt.Errorf("rule %d: bad pattern %q: %w", i, r.Pattern, err)
		}
		switch r.Role {
		case RolePublic, domain.RoleUser, domain.RoleAdmin:
		default:
			return nil, fmt.Errorf("rule %d: unknown role %q", i, r.Role)
		}
	}
	return p, nil
}

// Required returns the role the first matching rule demands. ok is false when
// no rule matches; such requests are denied.
func (p *Policy) Required(method, reqPath string) (role string, ok bool) {
	method = strings.ToUpper(method)
	if method == "HEAD" {
		method = "GET"
	}
	if len(reqPath) > 1 {
		reqPath = strings.TrimSuffix(reqPath, "/")
	}
	for _, r := range p.Rules {
		if r.Method != "*" && r.Method != method {
			continue
		}
		if m, _ := path.Match(r.Pattern, reqPath); m {
			return r.Role, true
		}
	}
	return "", false
}

// Satisfies reports whether a principal holding role may pass a rule that
// requires required. ADMIN satisfies USER.
func Satisfies(role, required string) bool {
	switch required {
	case RolePublic:
		return true
	case domain.RoleUser:
		return role == domain.RoleUser || role == domain.RoleAdmin
	case domain.RoleAdmin:
		return role == domain.RoleAdmin
	}
	return false
}
