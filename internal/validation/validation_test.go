package validation_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/validation"
)

func reasonOf(err error) string {
	var verr *validation.ValidationError
	Expect(errors.As(err, &verr)).To(BeTrue())
	return verr.Reason
}

var _ = Describe("ValidateSearch", func() {
	complete := models.SearchForm{
		Selection:      "66023",
		StreetName:     "Main",
		CivicNumber:    "123",
		OwnerFirstName: "Marie",
		OwnerLastName:  "Tremblay",
		LotNumber:      "1 234 567",
		Matricule:      "9140-12-3456-7-000-0000",
	}

	It("should require a municipality before anything else", func() {
		err := validation.ValidateSearch(models.ScopeMunicipality, models.SearchTypeAddress, models.SearchForm{})
		Expect(reasonOf(err)).To(Equal("select municipality"))
	})

	It("should require a collection for collection searches", func() {
		form := complete
		form.Selection = ""
		err := validation.ValidateSearch(models.ScopeCollection, models.SearchTypeAddress, form)
		Expect(reasonOf(err)).To(Equal("select collection"))
	})

	It("should only allow address searches on collections", func() {
		err := validation.ValidateSearch(models.ScopeCollection, models.SearchTypeOwner, complete)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("mode-specific required fields",
		func(searchType models.SearchType, clear func(*models.SearchForm), field models.Field, reason string) {
			form := complete
			clear(&form)

			err := validation.ValidateSearch(models.ScopeMunicipality, searchType, form)

			var verr *validation.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Field).To(Equal(field))
			Expect(verr.Reason).To(Equal(reason))
		},
		Entry("address without street", models.SearchTypeAddress, func(f *models.SearchForm) { f.StreetName = "" }, models.FieldStreetName, "street name and civic number required"),
		Entry("address without civic number", models.SearchTypeAddress, func(f *models.SearchForm) { f.CivicNumber = "" }, models.FieldCivicNumber, "street name and civic number required"),
		Entry("owner without first name", models.SearchTypeOwner, func(f *models.SearchForm) { f.OwnerFirstName = "" }, models.FieldOwnerFirstName, "owner first and last name required"),
		Entry("owner without last name", models.SearchTypeOwner, func(f *models.SearchForm) { f.OwnerLastName = "" }, models.FieldOwnerLastName, "owner first and last name required"),
		Entry("lot without lot number", models.SearchTypeLot, func(f *models.SearchForm) { f.LotNumber = "" }, models.FieldLotNumber, "lot number required"),
		Entry("matricule without matricule", models.SearchTypeMatricule, func(f *models.SearchForm) { f.Matricule = "" }, models.FieldMatricule, "matricule required"),
	)

	It("should ignore fields of other modes", func() {
		form := models.SearchForm{Selection: "66023", LotNumber: "42"}
		Expect(validation.ValidateSearch(models.ScopeMunicipality, models.SearchTypeLot, form)).To(Succeed())
	})

	It("should reject unknown search types", func() {
		err := validation.ValidateSearch(models.ScopeMunicipality, models.SearchType("zip"), complete)
		Expect(reasonOf(err)).To(ContainSubstring("unknown search type"))
	})

	It("should validate criteria with the form rules", func() {
		criteria := models.NewSearchCriteria(models.ScopeMunicipality, models.SearchTypeOwner, complete)
		Expect(validation.ValidateCriteria(criteria)).To(Succeed())

		criteria.OwnerLastName = ""
		Expect(reasonOf(validation.ValidateCriteria(criteria))).To(Equal("owner first and last name required"))
	})
})

var _ = Describe("ValidateConfiguration", func() {
	It("should require an API key", func() {
		err := validation.ValidateConfiguration(models.AdminForm{APIKey: "", IsActive: true})
		Expect(reasonOf(err)).To(Equal("API key required"))
	})

	It("should treat a blank API key as missing", func() {
		err := validation.ValidateConfiguration(models.AdminForm{APIKey: "   "})
		Expect(reasonOf(err)).To(Equal("API key required"))
	})

	It("should require codes when the service is active", func() {
		err := validation.ValidateConfiguration(models.AdminForm{APIKey: "key", MunicipalityCodes: "  ", IsActive: true})
		Expect(reasonOf(err)).To(ContainSubstring("at least one municipality code"))
	})

	It("should accept an inactive configuration without codes", func() {
		Expect(validation.ValidateConfiguration(models.AdminForm{APIKey: "key"})).To(Succeed())
	})

	DescribeTable("well formed code lists",
		func(codes string) {
			Expect(validation.ValidateConfiguration(models.AdminForm{APIKey: "key", MunicipalityCodes: codes, IsActive: true})).To(Succeed())
		},
		Entry("single code", "66023"),
		Entry("several codes", "66023,23027,65005"),
		Entry("spaces around codes", " 66023 , 23027 "),
		Entry("empty entries", "66023,,23027,"),
	)

	DescribeTable("malformed code lists name the first offending code",
		func(codes, offending string) {
			err := validation.ValidateConfiguration(models.AdminForm{APIKey: "key", MunicipalityCodes: codes, IsActive: true})
			Expect(reasonOf(err)).To(ContainSubstring(`"` + offending + `"`))
		},
		Entry("letters", "66023,abc", "abc"),
		Entry("mixed", "12a, 34b", "12a"),
		Entry("sign", "-1", "-1"),
		Entry("decimal", "66023, 1.5", "1.5"),
		Entry("inner space", "660 23", "660 23"),
	)
})
