package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestDefaultPolicyRoutes(t *testing.T) {
	p := Default()

	cases := []struct {
		method, path string
		want         string
		ok           bool
	}{
		{"GET", "/api/products", RolePublic, true},
		{"GET", "/api/products/search", RolePublic, true},
		{"GET", "/api/products/7", RolePublic, true},
		{"HEAD", "/api/products/7", RolePublic, true},
		{"GET", "/api/products/7/availability", RolePublic, true},
		{"POST", "/api/products", domain.RoleAdmin, true},
		{"PUT", "/api/products/7", domain.RoleAdmin, true},
		{"DELETE", "/api/products/7/", domain.RoleAdmin, true},
		{"POST", "/api/cart", domain.RoleUser, true},
		{"DELETE", "/api/cart/items/3", domain.RoleUser, true},
		{"POST", "/api/orders", domain.RoleUser, true},
		{"POST", "/api/users", RolePublic, true},
		{"GET", "/api/users", domain.RoleAdmin, true},
		{"PUT", "/api/admin/inventory/3", domain.RoleAdmin, true},
		{"GET", "/api/admin/orders", domain.RoleAdmin, true},
		{"PATCH", "/api/products/7", "", false},
		{"GET", "/api/cart/items/3/extra", "", false},
		{"GET", "/nowhere", "", false},
	}
	for _, tc := range cases {
		got, ok := p.Required(tc.method, tc.path)
		assert.Equal(t, tc.ok, ok, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.want, got, "%s %s", tc.method, tc.path)
	}
}

func TestSatisfies(t *testing.T) {
	assert.True(t, Satisfies("", RolePublic))
	assert.True(t, Satisfies(domain.RoleUser, domain.RoleUser))
	assert.True(t, Satisfies(domain.RoleAdmin, domain.RoleUser))
	assert.False(t, Satisfies(domain.RoleUser, domain.RoleAdmin))
	assert.False(t, Satisfies("", domain.RoleUser))
	assert.False(t, Satisfies(domain.RoleAdmin, "ROOT"))
}

func TestParseRejectsBadRules(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - {method: GET, pattern: /x, role: ROOT}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("rules:\n  - {method: GET, pattern: \"/x[\", role: USER}\n"))
	assert.Error(t, err)

	p, err := Parse([]byte("rules:\n  - {pattern: /x, role: user}\n"))
	require.NoError(t, err)
	role, ok := p.Required("DELETE", "/x")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleUser, role)
}

func TestLoadFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(file, []byte("rules:\n  - {method: GET, pattern: /healthz, role: ADMIN}\n"), 0o600))

	p, err := Load(file)
	require.NoError(t, err)
	role, ok := p.Required("GET", "/healthz")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, role)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, def.Rules)
}
