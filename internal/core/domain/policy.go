package domain

// AccessPolicy is the static access-control configuration. It is
// constructed once at process start and never mutated afterwards.
type AccessPolicy struct {
	// Restrictions maps a document ID (source filename) to the roles
	// allowed to see its chunks. A document absent from the map is
	// visible to every role.
	Restrictions map[string][]Role

	// SensitiveTerms are redacted from answer text for roles without
	// the SensitiveInfo permission. Matching is case-insensitive.
	SensitiveTerms []string
}

// DefaultAccessPolicy returns the built-in policy. Deployments can
// replace it wholesale through configuration.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		Restrictions: map[string][]Role{
			"cybersecurity.txt": {RoleAdmin, RoleManager},
			"cloud_devops.txt":  {RoleAdmin, RoleManager, RoleEmployee},
		},
		SensitiveTerms: []string{
			"security", "password", "encryption", "encrypted",
			"vulnerability", "attack", "penetration", "firewall",
			"intrusion",
		},
	}
}

// AllowedRoles returns the roles permitted to see the given document.
// Documents without an explicit restriction are open to all roles.
func (p AccessPolicy) AllowedRoles(documentID string) []Role {
	if roles, ok := p.Restrictions[documentID]; ok {
		return roles
	}
	return AllRoles()
}
