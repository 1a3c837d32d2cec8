package models

import (
	"errors"
	"fmt"
)

// SearchType selects which criteria a property search uses.
type SearchType string

const (
	SearchTypeAddress   SearchType = "address"
	SearchTypeOwner     SearchType = "owner"
	SearchTypeLot       SearchType = "lot"
	SearchTypeMatricule SearchType = "matricule"
)

// SearchTypes lists every search type in display order.
var SearchTypes = []SearchType{SearchTypeAddress, SearchTypeOwner, SearchTypeLot, SearchTypeMatricule}

func ParseSearchType(s string) (SearchType, error) {
	switch s {
	case "address":
		return SearchTypeAddress, nil
	case "owner":
		return SearchTypeOwner, nil
	case "lot":
		return SearchTypeLot, nil
	case "matricule":
		return SearchTypeMatricule, nil
	default:
		return "", fmt.Errorf("invalid search type: %s", s)
	}
}

// Scope is the kind of reference entity that narrows a search.
type Scope string

const (
	ScopeCollection   Scope = "collection"
	ScopeMunicipality Scope = "municipality"
)

// Field identifies an input of a component form.
type Field string

const (
	FieldCollection        Field = "selectedCollection"
	FieldMunicipality      Field = "selectedMunicipality"
	FieldStreetName        Field = "streetName"
	FieldCivicNumber       Field = "civicNumber"
	FieldOwnerFirstName    Field = "ownerFirstName"
	FieldOwnerLastName     Field = "ownerLastName"
	FieldLotNumber         Field = "lotNumber"
	FieldMatricule         Field = "matricule"
	FieldAPIKey            Field = "apiKey"
	FieldMunicipalityCodes Field = "municipalityCodes"
	FieldIsActive          Field = "isActive"
)

// ErrUnknownField is returned when a form does not accept a field.
var ErrUnknownField = errors.New("unknown form field")

// SearchForm holds the raw values of a search form. Selection is the chosen
// collection or municipality depending on the component scope.
type SearchForm struct {
	Selection      string
	StreetName     string
	CivicNumber    string
	OwnerFirstName string
	OwnerLastName  string
	LotNumber      string
	Matricule      string
}

// SearchCriteria is the payload of a property search. Only the fields of the
// active search type are set.
type SearchCriteria struct {
	Type           SearchType
	Municipality   string
	Collection     string
	StreetName     string
	CivicNumber    string
	OwnerFirstName string
	OwnerLastName  string
	LotNumber      string
	Matricule      string
}

// NewSearchCriteria builds the criteria for searchType from the form,
// leaving out the fields that belong to other search types.
func NewSearchCriteria(scope Scope, searchType SearchType, form SearchForm) SearchCriteria {
	c := SearchCriteria{Type: searchType}

	switch scope {
	case ScopeCollection:
		c.Collection = form.Selection
	case ScopeMunicipality:
		c.Municipality = form.Selection
	}

	switch searchType {
	case SearchTypeAddress:
		c.StreetName = form.StreetName
		c.CivicNumber = form.CivicNumber
	case SearchTypeOwner:
		c.OwnerFirstName = form.OwnerFirstName
		c.OwnerLastName = form.OwnerLastName
	case SearchTypeLot:
		c.LotNumber = form.LotNumber
	case SearchTypeMatricule:
		c.Matricule = form.Matricule
	}

	return c
}

// Scope returns the scope the criteria are narrowed by.
func (c SearchCriteria) Scope() Scope {
	if c.Collection != "" && c.Municipality == "" {
		return ScopeCollection
	}
	return ScopeMunicipality
}

// Form returns the search form the criteria were built from.
func (c SearchCriteria) Form() SearchForm {
	selection := c.Municipality
	if c.Scope() == ScopeCollection {
		selection = c.Collection
	}
	return SearchForm{
		Selection:      selection,
		StreetName:     c.StreetName,
		CivicNumber:    c.CivicNumber,
		OwnerFirstName: c.OwnerFirstName,
		OwnerLastName:  c.OwnerLastName,
		LotNumber:      c.LotNumber,
		Matricule:      c.Matricule,
	}
}
