package rbac

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/types"
)

//go:embed roles.json
var defaultRoles []byte

// Entities and actions guarded by the permission middleware
const (
	EntityDashboard = "dashboard"
	EntityShipment  = "shipment"
	EntityTrade     = "trade"
	EntityDocument  = "document"
	EntityActivity  = "activity"
	EntityUser      = "user"

	ActionRead         = "read"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionReadAdmin    = "read_admin"
	ActionReadClient   = "read_client"
	ActionReadOverview = "read_overview"
)

// Service handles permission checks with set-based lookups
type RBACService struct {
	// Fast lookup for permission checks (hot path - O(1))
	permissions map[string]map[string]map[string]bool

	// Full role definitions with metadata (for API responses)
	roles map[string]*Role
}

// Role represents a role with metadata
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
}

// NewRBACService loads the role definitions from the configured path or, when
// none is set, from the built-in roles.json
func NewRBACService(cfg *config.Configuration) (*RBACService, error) {
	data := defaultRoles
	if cfg.RBAC.RolesConfigPath != "" {
		var err error
		data, err = os.ReadFile(cfg.RBAC.RolesConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return newRBACService(data)
}

func newRBACService(data []byte) (*RBACService, error) {
	// Parse as: role_id -> role definition (with name, description, permissions)
	var rawConfig map[string]*Role
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	permissions := make(map[string]map[string]map[string]bool)

	for roleID, role := range rawConfig {
		if role == nil {
			return nil, fmt.Errorf("role %q has no definition", roleID)
		}
		role.ID = roleID
		permissions[roleID] = make(map[string]map[string]bool)

		for entity, actions := range role.Permissions {
			permissions[roleID][entity] = make(map[string]bool)

			for _, action := range actions {
				permissions[roleID][entity][action] = true
			}
		}
	}

	for _, required := range []types.Role{types.RoleAdmin, types.RoleClient} {
		if _, ok := permissions[required.String()]; !ok {
			return nil, fmt.Errorf("role %q is not defined", required)
		}
	}

	return &RBACService{
		permissions: permissions,
		roles:       rawConfig,
	}, nil
}

// HasPermission checks if the role grants entity.action. Unknown roles have
// no permissions.
func (s *RBACService) HasPermission(role types.Role, entity string, action string) bool {
	return s.permissions[role.String()] != nil &&
		s.permissions[role.String()][entity] != nil &&
		s.permissions[role.String()][entity][action]
}

// ValidateRole checks if role exists in definitions
func (s *RBACService) ValidateRole(roleName string) bool {
	_, exists := s.permissions[roleName]
	return exists
}

// GetRole returns a specific role with metadata
func (s *RBACService) GetRole(roleID string) (*Role, bool) {
	role, exists := s.roles[roleID]
	return role, exists
}
