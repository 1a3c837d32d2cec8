package v1

import "time"

// SearchRequestSearchType defines model for SearchRequest.SearchType.
type SearchRequestSearchType string

const (
	SearchRequestSearchTypeAddress   SearchRequestSearchType = "address"
	SearchRequestSearchTypeOwner     SearchRequestSearchType = "owner"
	SearchRequestSearchTypeLot       SearchRequestSearchType = "lot"
	SearchRequestSearchTypeMatricule SearchRequestSearchType = "matricule"
)

// ConfigurationStatus defines model for ConfigurationStatus.
type ConfigurationStatus struct {
	Configured bool `json:"configured"`
}

// Configuration defines model for Configuration.
type Configuration struct {
	ApiKey            string     `json:"apiKey"`
	MunicipalityCodes []string   `json:"municipalityCodes"`
	IsActive          bool       `json:"isActive"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// ConnectionTestRequest defines model for ConnectionTestRequest.
type ConnectionTestRequest struct {
	ApiKey string `json:"apiKey"`
}

// ConnectionTestResponse defines model for ConnectionTestResponse.
type ConnectionTestResponse struct {
	Connected bool `json:"connected"`
}

// ReferenceEntity defines model for ReferenceEntity.
type ReferenceEntity struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SearchRequest defines model for SearchRequest.
type SearchRequest struct {
	SearchType     SearchRequestSearchType `json:"searchType"`
	Municipality   string                  `json:"municipality,omitempty"`
	Collection     string                  `json:"collection,omitempty"`
	StreetName     string                  `json:"streetName,omitempty"`
	CivicNumber    string                  `json:"civicNumber,omitempty"`
	OwnerFirstName string                  `json:"ownerFirstName,omitempty"`
	OwnerLastName  string                  `json:"ownerLastName,omitempty"`
	LotNumber      string                  `json:"lotNumber,omitempty"`
	Matricule      string                  `json:"matricule,omitempty"`
}

// Property defines model for Property.
type Property struct {
	Id               string  `json:"id"`
	Collection       string  `json:"collection,omitempty"`
	MunicipalityCode string  `json:"municipalityCode,omitempty"`
	MunicipalityName string  `json:"municipalityName,omitempty"`
	Matricule        string  `json:"matricule,omitempty"`
	LotNumber        string  `json:"lotNumber,omitempty"`
	CivicNumber      string  `json:"civicNumber,omitempty"`
	StreetName       string  `json:"streetName,omitempty"`
	PostalCode       string  `json:"postalCode,omitempty"`
	OwnerFirstName   string  `json:"ownerFirstName,omitempty"`
	OwnerLastName    string  `json:"ownerLastName,omitempty"`
	AssessedValue    int64   `json:"assessedValue"`
	LandArea         float64 `json:"landArea"`
	YearBuilt        int     `json:"yearBuilt,omitempty"`
}

// SearchResponse defines model for SearchResponse.
type SearchResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
}

// Error defines model for Error.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
