package entity

// Settings section names recognized by the platform. Top-level keys outside
// any section are operational toggles.
const (
	SettingsSectionSecurity = "security"
	SettingsSectionAdmin    = "admin"
	SettingsSectionPlatform = "platform"
	SettingsSectionFeatures = "features"
)

// Settings is the nested platform configuration object. It is persisted as a
// single opaque blob keyed by a fixed identifier, never as partial patches,
// so the shape stays a free-form map rather than a rigid struct.
type Settings map[string]any

// RecognizedSettingsSection reports whether name is a known nested section.
// The empty name addresses the operational top level.
func RecognizedSettingsSection(name string) bool {
	switch name {
	case "", SettingsSectionSecurity, SettingsSectionAdmin, SettingsSectionPlatform, SettingsSectionFeatures:
		return true
	default:
		return false
	}
}

// DefaultSettings returns the configuration a fresh deployment starts with.
func DefaultSettings() Settings {
	return Settings{
		// Operational
		"codEnabled":         true,
		"orderingTimeWindow": "09:00 - 23:00",
		"platformActive":     true,
		"maintenanceMode":    false,

		SettingsSectionSecurity: map[string]any{
			"enforce2FA":     false,
			"sessionTimeout": "15m",
		},
		SettingsSectionAdmin: map[string]any{
			"name":  "Super Admin",
			"email": "admin@unibite.com",
		},
		SettingsSectionPlatform: map[string]any{
			"commission":      10,
			"minOrderAmount":  100,
			"maxActiveOrders": 50,
			"autoAssign":      true,
		},
		SettingsSectionFeatures: map[string]any{
			"ai":           false,
			"beta":         false,
			"experimental": false,
		},
	}
}

// Clone returns a deep copy so callers can mutate a candidate blob without
// touching the cached one.
func (s Settings) Clone() Settings {
	clone := make(Settings, len(s))
	for key, value := range s {
		if nested, ok := value.(map[string]any); ok {
			nestedClone := make(map[string]any, len(nested))
			for nestedKey, nestedValue := range nested {
				nestedClone[nestedKey] = nestedValue
			}
			clone[key] = nestedClone

			continue
		}
		clone[key] = value
	}

	return clone
}

// Set merges a single option into the blob, section-scoped when section is
// non-empty. Unknown sections are created only if recognized; callers should
// check RecognizedSettingsSection first.
func (s Settings) Set(section, key string, value any) {
	if section == "" {
		s[key] = value

		return
	}

	nested, ok := s[section].(map[string]any)
	if !ok {
		nested = make(map[string]any)
		s[section] = nested
	}
	nested[key] = value
}
