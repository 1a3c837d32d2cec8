package presenter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/presenter"
)

var _ = Describe("Presenter", func() {
	DescribeTable("gate branches",
		func(status models.ConfigurationStatus, expected presenter.GateView) {
			Expect(presenter.NewGateView(status)).To(Equal(expected))
		},
		Entry("unknown", models.ConfigurationStatusUnknown, presenter.GateView{Checking: true}),
		Entry("configured", models.ConfigurationStatusConfigured, presenter.GateView{Configured: true}),
		Entry("not configured", models.ConfigurationStatusNotConfigured, presenter.GateView{NotConfigured: true}),
	)

	DescribeTable("connection indicator",
		func(status models.ConnectionStatus, icon, variant string) {
			view := presenter.NewConnectionView(status)
			Expect(view.Icon).To(Equal(icon))
			Expect(view.Variant).To(Equal(variant))
			Expect(view.Text).NotTo(BeEmpty())
		},
		Entry("success", models.ConnectionStatusSuccess, "utility:success", "success"),
		Entry("error", models.ConnectionStatusError, "utility:error", "error"),
		Entry("unknown", models.ConnectionStatusUnknown, "utility:warning", "warning"),
	)

	Describe("NewSearchView", func() {
		state := components.SearchState{
			Modes:         models.SearchTypes,
			Configuration: models.ConfigurationStatusConfigured,
			SearchType:    models.SearchTypeOwner,
			References:    []models.ReferenceEntity{{Value: "66023", Label: "Montréal"}},
		}

		It("should show the fields of the active mode only", func() {
			view := presenter.NewSearchView(state)
			Expect(view.ShowOwner).To(BeTrue())
			Expect(view.ShowAddress || view.ShowLot || view.ShowMatricule).To(BeFalse())
		})

		It("should map options", func() {
			view := presenter.NewSearchView(state)
			Expect(view.SelectorOptions).To(Equal([]presenter.Option{{Label: "Montréal", Value: "66023"}}))
			Expect(view.SearchTypeOptions).To(HaveLen(4))
			Expect(view.SearchTypeOptions[0]).To(Equal(presenter.Option{Label: "Search by address", Value: "address"}))
		})

		It("should disable the search while busy", func() {
			Expect(presenter.NewSearchView(state).SearchDisabled).To(BeFalse())

			searching := state
			searching.IsSearching = true
			view := presenter.NewSearchView(searching)
			Expect(view.SearchDisabled).To(BeTrue())
			Expect(view.SearchLabel).To(Equal("Searching..."))

			checking := state
			checking.Configuration = models.ConfigurationStatusUnknown
			Expect(presenter.NewSearchView(checking).SearchDisabled).To(BeTrue())
		})
	})

	Describe("NewAdminView", func() {
		It("should disable the test button without an API key", func() {
			view := presenter.NewAdminView(components.AdminState{Tab: models.AdminTabConfiguration})
			Expect(view.TestDisabled).To(BeTrue())
			Expect(view.SaveDisabled).To(BeFalse())
			Expect(view.ShowConfigurationTab).To(BeTrue())
			Expect(view.ShowHelpTab).To(BeFalse())
		})

		It("should disable the test button with a blank API key", func() {
			view := presenter.NewAdminView(components.AdminState{Form: models.AdminForm{APIKey: "   "}})
			Expect(view.TestDisabled).To(BeTrue())
			Expect(view.HasValidAPIKey).To(BeFalse())
		})

		It("should switch labels while operations run", func() {
			view := presenter.NewAdminView(components.AdminState{
				Form:      models.AdminForm{APIKey: "key"},
				IsSaving:  true,
				IsTesting: true,
			})
			Expect(view.SaveLabel).To(Equal("Saving..."))
			Expect(view.TestLabel).To(Equal("Testing..."))
			Expect(view.SaveDisabled).To(BeTrue())
			Expect(view.TestDisabled).To(BeTrue())
		})

		It("should be fully configured after a successful test", func() {
			state := components.AdminState{
				Tab:        models.AdminTabHelp,
				Form:       models.AdminForm{APIKey: "test-key", MunicipalityCodes: "66023", IsActive: true},
				Connection: models.ConnectionTestResult{Status: models.ConnectionStatusSuccess, Message: "Connection succeeded on 2026-10-17 14:03:05"},
			}

			view := presenter.NewAdminView(state)
			Expect(view.FullyConfigured).To(BeTrue())
			Expect(view.ShowHelpTab).To(BeTrue())
			Expect(view.LastTestResult).To(ContainSubstring("succeeded"))

			state.Form.IsActive = false
			Expect(presenter.NewAdminView(state).FullyConfigured).To(BeFalse())
		})
	})
})
