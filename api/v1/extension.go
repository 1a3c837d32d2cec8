package v1

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tupyy/property-search-agent/internal/models"
)

func (c *Configuration) FromModel(m models.AdminConfiguration) {
	c.ApiKey = MaskAPIKey(m.APIKey)
	c.MunicipalityCodes = m.MunicipalityCodes
	if c.MunicipalityCodes == nil {
		c.MunicipalityCodes = []string{}
	}
	c.IsActive = m.IsActive
	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		c.UpdatedAt = &updatedAt
	}
}

func (c Configuration) ToModel() models.AdminConfiguration {
	return models.AdminConfiguration{
		APIKey:            c.ApiKey,
		MunicipalityCodes: c.MunicipalityCodes,
		IsActive:          c.IsActive,
	}
}

// MaskAPIKey keeps the last four characters of the key.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func (r *SearchRequest) FromModel(m models.SearchCriteria) {
	*r = SearchRequest{
		SearchType:     SearchRequestSearchType(m.Type),
		Municipality:   m.Municipality,
		Collection:     m.Collection,
		StreetName:     m.StreetName,
		CivicNumber:    m.CivicNumber,
		OwnerFirstName: m.OwnerFirstName,
		OwnerLastName:  m.OwnerLastName,
		LotNumber:      m.LotNumber,
		Matricule:      m.Matricule,
	}
}

func (r SearchRequest) ToModel() (models.SearchCriteria, error) {
	searchType, err := models.ParseSearchType(string(r.SearchType))
	if err != nil {
		return models.SearchCriteria{}, err
	}
	return models.SearchCriteria{
		Type:           searchType,
		Municipality:   r.Municipality,
		Collection:     r.Collection,
		StreetName:     r.StreetName,
		CivicNumber:    r.CivicNumber,
		OwnerFirstName: r.OwnerFirstName,
		OwnerLastName:  r.OwnerLastName,
		LotNumber:      r.LotNumber,
		Matricule:      r.Matricule,
	}, nil
}

func (p *Property) FromModel(m models.PropertyRecord) {
	*p = Property{
		Id:               m.ID,
		Collection:       m.Collection,
		MunicipalityCode: m.MunicipalityCode,
		MunicipalityName: m.MunicipalityName,
		Matricule:        m.Matricule,
		LotNumber:        m.LotNumber,
		CivicNumber:      m.CivicNumber,
		StreetName:       m.StreetName,
		PostalCode:       m.PostalCode,
		OwnerFirstName:   m.OwnerFirstName,
		OwnerLastName:    m.OwnerLastName,
		AssessedValue:    m.AssessedValue,
		LandArea:         m.LandArea,
		YearBuilt:        m.YearBuilt,
	}
}

func (p Property) ToModel() models.PropertyRecord {
	return models.PropertyRecord{
		ID:               p.Id,
		Collection:       p.Collection,
		MunicipalityCode: p.MunicipalityCode,
		MunicipalityName: p.MunicipalityName,
		Matricule:        p.Matricule,
		LotNumber:        p.LotNumber,
		CivicNumber:      p.CivicNumber,
		StreetName:       p.StreetName,
		PostalCode:       p.PostalCode,
		OwnerFirstName:   p.OwnerFirstName,
		OwnerLastName:    p.OwnerLastName,
		AssessedValue:    p.AssessedValue,
		LandArea:         p.LandArea,
		YearBuilt:        p.YearBuilt,
	}
}

func NewSearchResponse(records []models.PropertyRecord) SearchResponse {
	return SearchResponse{
		Properties: lo.Map(records, func(r models.PropertyRecord, _ int) Property {
			var p Property
			p.FromModel(r)
			return p
		}),
		Total: len(records),
	}
}

func (r SearchResponse) ToModel() []models.PropertyRecord {
	return lo.Map(r.Properties, func(p Property, _ int) models.PropertyRecord { return p.ToModel() })
}

func NewReferenceEntities(entities []models.ReferenceEntity) []ReferenceEntity {
	return lo.Map(entities, func(e models.ReferenceEntity, _ int) ReferenceEntity {
		return ReferenceEntity{Value: e.Value, Label: e.Label}
	})
}

func ToReferenceModels(entities []ReferenceEntity) []models.ReferenceEntity {
	return lo.Map(entities, func(e ReferenceEntity, _ int) models.ReferenceEntity {
		return models.ReferenceEntity{Value: e.Value, Label: e.Label}
	})
}
