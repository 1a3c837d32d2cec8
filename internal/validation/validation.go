// Package validation holds the pure checks run on form values before any
// call reaches the backend.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tupyy/property-search-agent/internal/models"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ValidationError is a locally detected input error. Reason is meant for the user.
type ValidationError struct {
	Field  models.Field
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field models.Field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateSearch checks a search form. The first failing rule wins.
func ValidateSearch(scope models.Scope, searchType models.SearchType, form models.SearchForm) error {
	switch scope {
	case models.ScopeMunicipality:
		if form.Selection == "" {
			return invalid(models.FieldMunicipality, "select municipality")
		}
	case models.ScopeCollection:
		if form.Selection == "" {
			return invalid(models.FieldCollection, "select collection")
		}
		if searchType != models.SearchTypeAddress {
			return invalid("", fmt.Sprintf("search type %q is not available for collections", searchType))
		}
	default:
		return invalid("", fmt.Sprintf("unknown search scope %q", scope))
	}

	switch searchType {
	case models.SearchTypeAddress:
		if form.StreetName == "" {
			return invalid(models.FieldStreetName, "street name and civic number required")
		}
		if form.CivicNumber == "" {
			return invalid(models.FieldCivicNumber, "street name and civic number required")
		}
	case models.SearchTypeOwner:
		if form.OwnerFirstName == "" {
			return invalid(models.FieldOwnerFirstName, "owner first and last name required")
		}
		if form.OwnerLastName == "" {
			return invalid(models.FieldOwnerLastName, "owner first and last name required")
		}
	case models.SearchTypeLot:
		if form.LotNumber == "" {
			return invalid(models.FieldLotNumber, "lot number required")
		}
	case models.SearchTypeMatricule:
		if form.Matricule == "" {
			return invalid(models.FieldMatricule, "matricule required")
		}
	default:
		return invalid("", fmt.Sprintf("unknown search type %q", searchType))
	}

	return nil
}

// ValidateCriteria checks criteria received by the backend with the same
// rules as the search forms.
func ValidateCriteria(criteria models.SearchCriteria) error {
	return ValidateSearch(criteria.Scope(), criteria.Type, criteria.Form())
}

// ValidateAPIKey checks that an API key was provided.
func ValidateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return invalid(models.FieldAPIKey, "API key required")
	}
	return nil
}

// ValidateConfiguration checks the administration form. Every non-empty
// comma-separated municipality code must be made of digits only; the first
// offending code is named in the reason.
func ValidateConfiguration(form models.AdminForm) error {
	if err := ValidateAPIKey(form.APIKey); err != nil {
		return err
	}

	if form.IsActive && len(models.SplitCodes(form.MunicipalityCodes)) == 0 {
		return invalid(models.FieldMunicipalityCodes, "at least one municipality code required when the service is active")
	}

	for _, code := range strings.Split(form.MunicipalityCodes, ",") {
		code = strings.TrimSpace(code)
		if code != "" && !digitsOnly.MatchString(code) {
			return invalid(models.FieldMunicipalityCodes, fmt.Sprintf("municipality code %q is invalid: use digits only", code))
		}
	}

	return nil
}
