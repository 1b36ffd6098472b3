package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the route table. A top-level Skip disables role checks
// everywhere, which is only meant for local development.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

// routeKey ignores a trailing slash: chi reports subrouter roots such as
// Route("/customers").Get("/") as /v1/customers/.
func routeKey(path, method string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for the chi route pattern path, or the
// zero Permission when the route is not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	idx, ok := r.index[routeKey(path, method)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Public reports whether the route needs no token.
func (r *PermissionData) Public(path, method string) bool {
	return r.FindPermissions(path, method).Skip
}

// Allows reports whether role may call the route. Routes missing from the
// table are denied.
func (r *PermissionData) Allows(path, method, role string) bool {
	if r.Skip {
		return true
	}

	permission := r.FindPermissions(path, method)
	if permission.Skip {
		return true
	}

	return slices.Contains(permission.Permissions, role)
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]int, len(r.Endpoints))

	for idx, endpoint := range r.Endpoints {
		r.index[routeKey(endpoint.Path, endpoint.Method)] = idx
	}
}

func (r *PermissionData) validate() error {
	seen := make(map[string]struct{}, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)

		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate permission entry %q", key)
		}

		if !endpoint.Skip && len(endpoint.Permissions) == 0 {
			return fmt.Errorf("permission entry %q has no roles", key)
		}

		seen[key] = struct{}{}
	}

	return nil
}

func parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.validate(); err != nil {
		return nil, err
	}

	permissions.buildIndex()

	return &permissions, nil
}

// Get loads the embedded route table. It returns nil when the table is
// invalid, which makes the RBAC middleware deny every request.
func Get() *PermissionData {
	permissions, err := parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Loaded embedded permissions")

	return permissions
}
