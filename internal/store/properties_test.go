package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/store"
)

var _ = Describe("PropertyStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)

		err := s.Properties().Insert(ctx,
			models.PropertyRecord{
				ID: "p1", MunicipalityCode: "66023", Matricule: "9739-27-0001", LotNumber: "1 234 567",
				CivicNumber: "1200", StreetName: "Rue Sherbrooke Ouest", PostalCode: "H3A 1H6",
				OwnerFirstName: "Marie", OwnerLastName: "Tremblay", AssessedValue: 950000, LandArea: 410.5, YearBuilt: 1925,
			},
			models.PropertyRecord{
				ID: "p2", MunicipalityCode: "66023", Matricule: "9739-27-0002", LotNumber: "1 234 568",
				CivicNumber: "1202", StreetName: "Rue Sherbrooke Ouest",
				OwnerFirstName: "Jean", OwnerLastName: "Gagnon",
			},
			models.PropertyRecord{
				ID: "p3", MunicipalityCode: "23027", Matricule: "1111-00-0001", LotNumber: "2 000 001",
				CivicNumber: "1200", StreetName: "Grande Allée Est",
				OwnerFirstName: "Marie", OwnerLastName: "Tremblay",
			},
			models.PropertyRecord{
				ID: "p4", Collection: "heritage", CivicNumber: "10", StreetName: "Rue du Trésor",
			},
		)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Close()
		}
	})

	ids := func(records []models.PropertyRecord) []string {
		out := make([]string, 0, len(records))
		for _, r := range records {
			out = append(out, r.ID)
		}
		return out
	}

	Describe("Search", func() {
		It("should search by address within the municipality", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeAddress, Municipality: "66023", StreetName: "sherbrooke", CivicNumber: "1200",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p1"}))
			Expect(records[0].MunicipalityName).To(Equal("Montréal"))
			Expect(records[0].AssessedValue).To(Equal(int64(950000)))
			Expect(records[0].YearBuilt).To(Equal(1925))
		})

		It("should search by owner", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeOwner, Municipality: "23027", OwnerFirstName: "marie", OwnerLastName: "TREMBLAY",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p3"}))
		})

		It("should search by lot number ignoring spaces", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeLot, Municipality: "66023", LotNumber: "1234568",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p2"}))
		})

		It("should search by matricule", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeMatricule, Municipality: "66023", Matricule: "9739-27-0001",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p1"}))
		})

		It("should search a collection by address", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeAddress, Collection: "heritage", StreetName: "Trésor", CivicNumber: "10",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p4"}))
			Expect(records[0].MunicipalityName).To(BeEmpty())
		})

		It("should return an empty result when nothing matches", func() {
			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeMatricule, Municipality: "65005", Matricule: "9739-27-0001",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("should reject an unknown search type", func() {
			_, err := s.Properties().Search(ctx, models.SearchCriteria{Type: "zip", Municipality: "66023"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Insert", func() {
		It("should replace a record with the same id", func() {
			err := s.Properties().Insert(ctx, models.PropertyRecord{
				ID: "p1", MunicipalityCode: "66023", Matricule: "9739-27-9999",
			})
			Expect(err).NotTo(HaveOccurred())

			records, err := s.Properties().Search(ctx, models.SearchCriteria{
				Type: models.SearchTypeMatricule, Municipality: "66023", Matricule: "9739-27-9999",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{"p1"}))
		})
	})

	Describe("Collections", func() {
		It("should list distinct collections", func() {
			collections, err := s.Properties().Collections(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(collections).To(Equal([]models.ReferenceEntity{{Value: "heritage", Label: "heritage"}}))
		})
	})
})

var _ = Describe("MunicipalityStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		s, db = newTestStore(ctx)
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Close()
		}
	})

	It("should list the seeded municipalities ordered by name", func() {
		municipalities, err := s.Municipalities().List(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(municipalities).To(HaveLen(6))
		Expect(municipalities[0]).To(Equal(models.ReferenceEntity{Value: "81017", Label: "Gatineau"}))
	})

	It("should filter by code", func() {
		municipalities, err := s.Municipalities().List(ctx, []string{"23027", "66023", "99999"})
		Expect(err).NotTo(HaveOccurred())
		Expect(municipalities).To(Equal([]models.ReferenceEntity{
			{Value: "66023", Label: "Montréal"},
			{Value: "23027", Label: "Québec"},
		}))
	})

	It("should return nothing for an empty code list", func() {
		municipalities, err := s.Municipalities().List(ctx, []string{})
		Expect(err).NotTo(HaveOccurred())
		Expect(municipalities).To(BeEmpty())
	})

	It("should rename an existing municipality", func() {
		Expect(s.Municipalities().Save(ctx, models.ReferenceEntity{Value: "65005", Label: "Ville de Laval"})).To(Succeed())

		municipalities, err := s.Municipalities().List(ctx, []string{"65005"})
		Expect(err).NotTo(HaveOccurred())
		Expect(municipalities).To(Equal([]models.ReferenceEntity{{Value: "65005", Label: "Ville de Laval"}}))
	})
})
