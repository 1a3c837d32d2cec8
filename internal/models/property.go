package models

import "time"

// PropertyRecord is a single entry of an assessment roll.
type PropertyRecord struct {
	ID               string
	Collection       string
	MunicipalityCode string
	MunicipalityName string
	Matricule        string
	LotNumber        string
	CivicNumber      string
	StreetName       string
	PostalCode       string
	OwnerFirstName   string
	OwnerLastName    string
	AssessedValue    int64
	LandArea         float64
	YearBuilt        int
	CreatedAt        time.Time
}
