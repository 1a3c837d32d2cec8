package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ConfigurationStatus tells whether the backend is usable.
type ConfigurationStatus string

const (
	// ConfigurationStatusUnknown - the check has not resolved yet
	ConfigurationStatusUnknown ConfigurationStatus = "unknown"
	// ConfigurationStatusConfigured - the backend reported a usable configuration
	ConfigurationStatusConfigured ConfigurationStatus = "configured"
	// ConfigurationStatusNotConfigured - the backend is not configured or the check failed
	ConfigurationStatusNotConfigured ConfigurationStatus = "not_configured"
)

func ParseConfigurationStatus(s string) (ConfigurationStatus, error) {
	switch s {
	case "unknown":
		return ConfigurationStatusUnknown, nil
	case "configured":
		return ConfigurationStatusConfigured, nil
	case "not_configured":
		return ConfigurationStatusNotConfigured, nil
	default:
		return "", fmt.Errorf("invalid configuration status: %s", s)
	}
}

// AdminConfiguration is the service configuration persisted by the backend.
type AdminConfiguration struct {
	APIKey            string
	MunicipalityCodes []string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AdminForm holds the raw values typed in the administration form.
type AdminForm struct {
	APIKey            string
	MunicipalityCodes string
	IsActive          bool
}

// ToConfiguration converts the form into a configuration. Codes are trimmed
// and empty entries dropped.
func (f AdminForm) ToConfiguration() AdminConfiguration {
	return AdminConfiguration{
		APIKey:            strings.TrimSpace(f.APIKey),
		MunicipalityCodes: SplitCodes(f.MunicipalityCodes),
		IsActive:          f.IsActive,
	}
}

// Form returns the administration form matching the configuration.
func (c AdminConfiguration) Form() AdminForm {
	return AdminForm{
		APIKey:            c.APIKey,
		MunicipalityCodes: strings.Join(c.MunicipalityCodes, ","),
		IsActive:          c.IsActive,
	}
}

// SplitCodes splits a comma-separated code list, trimming every entry and
// dropping the empty ones.
func SplitCodes(s string) []string {
	codes := lo.Map(strings.Split(s, ","), func(c string, _ int) string { return strings.TrimSpace(c) })
	return lo.Filter(codes, func(c string, _ int) bool { return c != "" })
}

// AdminTab identifies a section of the administration screen.
type AdminTab string

const (
	AdminTabConfiguration AdminTab = "configuration"
	AdminTabHelp          AdminTab = "help"
)

func ParseAdminTab(s string) (AdminTab, error) {
	switch s {
	case "configuration":
		return AdminTabConfiguration, nil
	case "help":
		return AdminTabHelp, nil
	default:
		return "", fmt.Errorf("invalid tab: %s", s)
	}
}
