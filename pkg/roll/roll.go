// Package roll reads property roll files.
//
// A roll is a YAML document listing municipalities and property records:
//
//	municipalities:
//	  - code: "66023"
//	    name: Montréal
//	properties:
//	  - municipality: "66023"
//	    matricule: 9739-27-0001
//	    civicNumber: "1200"
//	    streetName: Rue Sherbrooke Ouest
package roll

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tupyy/property-search-agent/internal/models"
)

// namespace derives stable record IDs so re-importing a roll replaces its records.
var namespace = uuid.MustParse("7f1c9a64-3d1e-4b7a-9a55-2f0c6c1e8d21")

type Municipality struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type Property struct {
	ID             string  `yaml:"id,omitempty"`
	Collection     string  `yaml:"collection,omitempty"`
	Municipality   string  `yaml:"municipality,omitempty"`
	Matricule      string  `yaml:"matricule,omitempty"`
	LotNumber      string  `yaml:"lotNumber,omitempty"`
	CivicNumber    string  `yaml:"civicNumber,omitempty"`
	StreetName     string  `yaml:"streetName,omitempty"`
	PostalCode     string  `yaml:"postalCode,omitempty"`
	OwnerFirstName string  `yaml:"ownerFirstName,omitempty"`
	OwnerLastName  string  `yaml:"ownerLastName,omitempty"`
	AssessedValue  int64   `yaml:"assessedValue,omitempty"`
	LandArea       float64 `yaml:"landArea,omitempty"`
	YearBuilt      int     `yaml:"yearBuilt,omitempty"`
}

type Roll struct {
	Municipalities []Municipality `yaml:"municipalities,omitempty"`
	Properties     []Property     `yaml:"properties"`
}

// Parse decodes a roll. Every property must belong to a municipality or a
// collection.
func Parse(r io.Reader) (*Roll, error) {
	var roll Roll
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roll); err != nil {
		if errors.Is(err, io.EOF) {
			return &roll, nil
		}
		return nil, fmt.Errorf("decoding roll: %w", err)
	}

	for i, m := range roll.Municipalities {
		if strings.TrimSpace(m.Code) == "" || strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("municipality #%d: code and name are required", i+1)
		}
	}
	for i, p := range roll.Properties {
		if strings.TrimSpace(p.Municipality) == "" && strings.TrimSpace(p.Collection) == "" {
			return nil, fmt.Errorf("property #%d: municipality or collection is required", i+1)
		}
	}

	return &roll, nil
}

func (r *Roll) MunicipalityModels() []models.ReferenceEntity {
	out := make([]models.ReferenceEntity, 0, len(r.Municipalities))
	for _, m := range r.Municipalities {
		out = append(out, models.ReferenceEntity{Value: strings.TrimSpace(m.Code), Label: strings.TrimSpace(m.Name)})
	}
	return out
}

// PropertyModels converts the properties. Records without an ID get one
// derived from their location and matricule.
func (r *Roll) PropertyModels() []models.PropertyRecord {
	out := make([]models.PropertyRecord, 0, len(r.Properties))
	for _, p := range r.Properties {
		id := p.ID
		if id == "" {
			key := strings.Join([]string{p.Collection, p.Municipality, p.Matricule, p.LotNumber, p.CivicNumber, p.StreetName}, "|")
			id = uuid.NewSHA1(namespace, []byte(key)).String()
		}
		out = append(out, models.PropertyRecord{
			ID:               id,
			Collection:       strings.TrimSpace(p.Collection),
			MunicipalityCode: strings.TrimSpace(p.Municipality),
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
		})
	}
	return out
}

// FromModels builds a roll holding the records, e.g. to export search results.
func FromModels(records []models.PropertyRecord) *Roll {
	r := &Roll{Properties: make([]Property, 0, len(records))}
	for _, rec := range records {
		r.Properties = append(r.Properties, Property{
			ID:             rec.ID,
			Collection:     rec.Collection,
			Municipality:   rec.MunicipalityCode,
			Matricule:      rec.Matricule,
			LotNumber:      rec.LotNumber,
			CivicNumber:    rec.CivicNumber,
			StreetName:     rec.StreetName,
			PostalCode:     rec.PostalCode,
			OwnerFirstName: rec.OwnerFirstName,
			OwnerLastName:  rec.OwnerLastName,
			AssessedValue:  rec.AssessedValue,
			LandArea:       rec.LandArea,
			YearBuilt:      rec.YearBuilt,
		})
	}
	return r
}

// Write encodes the roll as YAML.
func (r *Roll) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
