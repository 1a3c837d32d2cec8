package components_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/validation"
	"github.com/tupyy/property-search-agent/pkg/scheduler"
)

var _ = Describe("PropertySearch", func() {
	var (
		ctx      context.Context
		sched    *scheduler.Scheduler
		remote   *fakeRemote
		notifier *recordingNotifier
	)

	BeforeEach(func() {
		ctx = context.Background()
		sched = scheduler.NewScheduler(1)
		remote = &fakeRemote{
			configured: true,
			municipalities: []models.ReferenceEntity{
				{Value: "M1", Label: "Municipality 1"},
			},
			collections: []models.ReferenceEntity{
				{Value: "roll-2024", Label: "roll-2024"},
			},
		}
		notifier = &recordingNotifier{}
	})

	AfterEach(func() {
		sched.Close()
	})

	fillAddress := func(search *components.PropertySearch) {
		Expect(search.SetField(models.FieldMunicipality, "M1")).To(Succeed())
		Expect(search.SetField(models.FieldStreetName, "Main")).To(Succeed())
		Expect(search.SetField(models.FieldCivicNumber, "123")).To(Succeed())
	}

	Describe("Initialize", func() {
		It("should load municipalities once the backend is configured", func() {
			search := components.NewMunicipalSearch(sched, remote, notifier)
			Expect(search.State().Configuration).To(Equal(models.ConfigurationStatusUnknown))

			result, err := search.Initialize().Wait(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(models.ConfigurationStatusConfigured))

			state := search.State()
			Expect(state.Configuration).To(Equal(models.ConfigurationStatusConfigured))
			Expect(state.References).To(Equal(remote.municipalities))
			Expect(state.IsLoading).To(BeFalse())
		})

		It("should not load municipalities when the backend is not configured", func() {
			remote.configured = false
			search := components.NewMunicipalSearch(sched, remote, notifier)

			result, err := search.Initialize().Wait(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(models.ConfigurationStatusNotConfigured))

			_, reference, _, _, _ := remote.calls()
			Expect(reference).To(BeZero())
			Expect(search.State().References).To(BeEmpty())
		})

		It("should raise the loading flag until the check resolves", func() {
			remote.configuredGate = make(chan struct{})
			search := components.NewMunicipalSearch(sched, remote, notifier)

			f := search.Initialize()
			Expect(search.State().IsLoading).To(BeTrue())
			Expect(search.State().Configuration).To(Equal(models.ConfigurationStatusUnknown))

			second, _ := search.Initialize().Wait(ctx)
			Expect(second.Err).To(MatchError(components.ErrOperationInProgress))

			close(remote.configuredGate)
			_, err := f.Wait(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(search.State().IsLoading).To(BeFalse())
		})

		It("should load collections without a configuration check", func() {
			search := components.NewCollectionSearch(sched, remote, notifier)

			result, err := search.Initialize().Wait(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Err).NotTo(HaveOccurred())

			configured, _, _, _, _ := remote.calls()
			Expect(configured).To(BeZero())
			Expect(search.State().References).To(Equal(remote.collections))
		})

		It("should return the loader error", func() {
			remote.referenceErr = errors.New("down")
			search := components.NewMunicipalSearch(sched, remote, notifier)

			result, err := search.Initialize().Wait(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Err).To(MatchError(ContainSubstring("down")))
			Expect(notifier.WithSeverity(models.SeverityError)).To(HaveLen(1))
		})
	})

	Describe("SetField", func() {
		It("should reject fields outside the allow-list", func() {
			search := components.NewMunicipalSearch(sched, remote, notifier)
			Expect(search.SetField(models.Field("__proto__"), "x")).To(MatchError(models.ErrUnknownField))
			Expect(search.SetField(models.FieldAPIKey, "x")).To(MatchError(models.ErrUnknownField))
		})

		It("should only accept address fields on collection searches", func() {
			search := components.NewCollectionSearch(sched, remote, notifier)
			Expect(search.SetField(models.FieldCollection, "roll-2024")).To(Succeed())
			Expect(search.SetField(models.FieldMunicipality, "M1")).To(MatchError(models.ErrUnknownField))
			Expect(search.SetField(models.FieldOwnerLastName, "Roy")).To(MatchError(models.ErrUnknownField))
			Expect(search.SetSearchType(models.SearchTypeOwner)).NotTo(Succeed())
		})
	})

	Describe("Search", func() {
		It("should show an empty result and notify it as information", func() {
			remote.records = []models.PropertyRecord{}
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)

			records, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())

			state := search.State()
			Expect(state.ShowResults).To(BeTrue())
			Expect(state.Results).To(BeEmpty())
			Expect(notifier.All()).To(HaveLen(1))
			Expect(notifier.WithSeverity(models.SeverityInfo)).To(HaveLen(1))
		})

		It("should not call the backend when the municipality is missing", func() {
			search := components.NewMunicipalSearch(sched, remote, notifier)
			Expect(search.SetField(models.FieldStreetName, "Main")).To(Succeed())
			Expect(search.SetField(models.FieldCivicNumber, "123")).To(Succeed())

			_, err := search.Search(ctx)

			var verr *validation.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Reason).To(Equal("select municipality"))
			Expect(remote.searchCount()).To(BeZero())
			Expect(notifier.WithSeverity(models.SeverityError)).To(HaveLen(1))
			Expect(search.State().IsSearching).To(BeFalse())
		})

		DescribeTable("should not call the backend when a mode field is empty",
			func(searchType models.SearchType, field models.Field) {
				search := components.NewMunicipalSearch(sched, remote, notifier)
				Expect(search.SetSearchType(searchType)).To(Succeed())
				Expect(search.SetField(models.FieldMunicipality, "M1")).To(Succeed())
				Expect(search.SetField(field, "value")).To(Succeed())

				_, err := search.Search(ctx)
				Expect(err).To(HaveOccurred())
				Expect(remote.searchCount()).To(BeZero())
			},
			Entry("address with street only", models.SearchTypeAddress, models.FieldStreetName),
			Entry("address with civic number only", models.SearchTypeAddress, models.FieldCivicNumber),
			Entry("owner with first name only", models.SearchTypeOwner, models.FieldOwnerFirstName),
			Entry("owner with last name only", models.SearchTypeOwner, models.FieldOwnerLastName),
			Entry("lot with another mode field", models.SearchTypeLot, models.FieldMatricule),
			Entry("matricule with another mode field", models.SearchTypeMatricule, models.FieldLotNumber),
		)

		It("should only send the fields of the active mode", func() {
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)
			Expect(search.SetField(models.FieldOwnerFirstName, "Marie")).To(Succeed())
			Expect(search.SetField(models.FieldLotNumber, "1234567")).To(Succeed())
			Expect(search.SetSearchType(models.SearchTypeLot)).To(Succeed())

			_, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(remote.lastCriteria).To(Equal(models.SearchCriteria{
				Type:         models.SearchTypeLot,
				Municipality: "M1",
				LotNumber:    "1234567",
			}))
		})

		It("should return the same results on repeated searches", func() {
			remote.records = []models.PropertyRecord{{ID: "1", StreetName: "Main", CivicNumber: "123"}}
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)

			first, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(search.State().Results).To(Equal(remote.records))
			Expect(search.State().ShowResults).To(BeTrue())
			Expect(notifier.WithSeverity(models.SeverityError)).To(BeEmpty())
		})

		It("should keep results hidden when the backend fails", func() {
			remote.records = []models.PropertyRecord{{ID: "1"}}
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)
			_, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())

			remote.searchErr = &models.RemoteError{Message: "municipality 66023 is not authorized", Err: errors.New("status 403")}
			_, err = search.Search(ctx)
			Expect(err).To(HaveOccurred())

			state := search.State()
			Expect(state.ShowResults).To(BeFalse())
			Expect(state.Results).To(BeEmpty())
			Expect(state.IsSearching).To(BeFalse())
			Expect(notifier.WithSeverity(models.SeverityError)).To(ConsistOf(notification{
				Title:    "Search error",
				Message:  "municipality 66023 is not authorized",
				Severity: models.SeverityError,
			}))
		})

		It("should reject a duplicate search while one is pending", func() {
			remote.searchGate = make(chan struct{})
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)

			done := make(chan error)
			go func() {
				defer GinkgoRecover()
				_, err := search.Search(ctx)
				done <- err
			}()

			Eventually(func() bool { return search.State().IsSearching }).Should(BeTrue())

			_, err := search.Search(ctx)
			Expect(err).To(MatchError(components.ErrOperationInProgress))
			Expect(remote.searchCount()).To(Equal(1))

			close(remote.searchGate)
			Eventually(done).Should(Receive(BeNil()))
			Expect(search.State().IsSearching).To(BeFalse())
		})

		It("should clear results when the search type changes", func() {
			remote.records = []models.PropertyRecord{{ID: "1"}}
			search := components.NewMunicipalSearch(sched, remote, notifier)
			fillAddress(search)
			_, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(search.SetSearchType(models.SearchTypeOwner)).To(Succeed())

			state := search.State()
			Expect(state.SearchType).To(Equal(models.SearchTypeOwner))
			Expect(state.ShowResults).To(BeFalse())
			Expect(state.Results).To(BeEmpty())
		})

		It("should search a collection by address", func() {
			remote.records = []models.PropertyRecord{{ID: "1", Collection: "roll-2024"}}
			search := components.NewCollectionSearch(sched, remote, notifier)
			Expect(search.SetField(models.FieldCollection, "roll-2024")).To(Succeed())
			Expect(search.SetField(models.FieldStreetName, "Main")).To(Succeed())
			Expect(search.SetField(models.FieldCivicNumber, "123")).To(Succeed())

			records, err := search.Search(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(remote.lastCriteria.Collection).To(Equal("roll-2024"))
			Expect(remote.lastCriteria.Municipality).To(BeEmpty())
		})
	})
})
