// Package presenter derives display state from component snapshots.
// Every function is pure.
package presenter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/models"
)

// Option is a selector entry.
type Option struct {
	Label string
	Value string
}

var searchTypeLabels = map[models.SearchType]string{
	models.SearchTypeAddress:   "Search by address",
	models.SearchTypeOwner:     "Search by owner",
	models.SearchTypeLot:       "Search by lot",
	models.SearchTypeMatricule: "Search by matricule",
}

// GateView selects the branch to render from the configuration status.
// While Checking, no branch depending on the status is rendered.
type GateView struct {
	Checking      bool
	Configured    bool
	NotConfigured bool
}

func NewGateView(status models.ConfigurationStatus) GateView {
	return GateView{
		Checking:      status == models.ConfigurationStatusUnknown,
		Configured:    status == models.ConfigurationStatusConfigured,
		NotConfigured: status == models.ConfigurationStatusNotConfigured,
	}
}

type SearchView struct {
	Gate              GateView
	SelectorOptions   []Option
	SearchTypeOptions []Option
	ShowAddress       bool
	ShowOwner         bool
	ShowLot           bool
	ShowMatricule     bool
	SearchDisabled    bool
	SearchLabel       string
	ShowResults       bool
	ResultCount       int
}

func NewSearchView(s components.SearchState) SearchView {
	label := "Search"
	if s.IsSearching {
		label = "Searching..."
	}

	return SearchView{
		Gate:              NewGateView(s.Configuration),
		SelectorOptions:   ReferenceOptions(s.References),
		SearchTypeOptions: SearchTypeOptions(s.Modes),
		ShowAddress:       s.SearchType == models.SearchTypeAddress,
		ShowOwner:         s.SearchType == models.SearchTypeOwner,
		ShowLot:           s.SearchType == models.SearchTypeLot,
		ShowMatricule:     s.SearchType == models.SearchTypeMatricule,
		SearchDisabled:    s.IsLoading || s.IsSearching || s.Configuration != models.ConfigurationStatusConfigured,
		SearchLabel:       label,
		ShowResults:       s.ShowResults,
		ResultCount:       len(s.Results),
	}
}

// ReferenceOptions maps reference entities to selector options.
func ReferenceOptions(entities []models.ReferenceEntity) []Option {
	return lo.Map(entities, func(e models.ReferenceEntity, _ int) Option {
		return Option{Label: e.Label, Value: e.Value}
	})
}

// SearchTypeOptions maps search types to selector options.
func SearchTypeOptions(modes []models.SearchType) []Option {
	return lo.Map(modes, func(m models.SearchType, _ int) Option {
		return Option{Label: searchTypeLabels[m], Value: string(m)}
	})
}

// ConnectionView is the indicator of the last connection test.
type ConnectionView struct {
	Icon    string
	Variant string
	Text    string
}

func NewConnectionView(status models.ConnectionStatus) ConnectionView {
	switch status {
	case models.ConnectionStatusSuccess:
		return ConnectionView{Icon: "utility:success", Variant: "success", Text: "Connection active"}
	case models.ConnectionStatusError:
		return ConnectionView{Icon: "utility:error", Variant: "error", Text: "Connection failed"}
	case models.ConnectionStatusUnknown:
		return ConnectionView{Icon: "utility:warning", Variant: "warning", Text: "Not tested"}
	default:
		return ConnectionView{Icon: "utility:warning", Variant: "warning", Text: "Not tested"}
	}
}

type AdminView struct {
	Gate                   GateView
	ShowConfigurationTab   bool
	ShowHelpTab            bool
	SaveDisabled           bool
	TestDisabled           bool
	SaveLabel              string
	TestLabel              string
	Connection             ConnectionView
	LastTestResult         string
	HasValidAPIKey         bool
	HasValidConnection     bool
	HasValidMunicipalities bool
	FullyConfigured        bool
}

func NewAdminView(s components.AdminState) AdminView {
	hasAPIKey := strings.TrimSpace(s.Form.APIKey) != ""
	hasConnection := s.Connection.Status == models.ConnectionStatusSuccess
	hasMunicipalities := strings.TrimSpace(s.Form.MunicipalityCodes) != ""

	saveLabel := "Save configuration"
	if s.IsSaving {
		saveLabel = "Saving..."
	}
	testLabel := "Test connection"
	if s.IsTesting {
		testLabel = "Testing..."
	}

	return AdminView{
		Gate:                   NewGateView(s.Configuration),
		ShowConfigurationTab:   s.Tab == models.AdminTabConfiguration,
		ShowHelpTab:            s.Tab == models.AdminTabHelp,
		SaveDisabled:           s.IsSaving || s.IsLoading,
		TestDisabled:           s.IsTesting || s.IsLoading || !hasAPIKey,
		SaveLabel:              saveLabel,
		TestLabel:              testLabel,
		Connection:             NewConnectionView(s.Connection.Status),
		LastTestResult:         s.Connection.Message,
		HasValidAPIKey:         hasAPIKey,
		HasValidConnection:     hasConnection,
		HasValidMunicipalities: hasMunicipalities,
		FullyConfigured:        hasAPIKey && hasConnection && hasMunicipalities && s.Form.IsActive,
	}
}
