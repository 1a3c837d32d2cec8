package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/presenter"
	"github.com/tupyy/property-search-agent/pkg/prompt"
	"github.com/tupyy/property-search-agent/pkg/roll"
	"github.com/tupyy/property-search-agent/pkg/scheduler"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type searchOptions struct {
	Scope          string
	SearchType     string
	Selection      string
	StreetName     string
	CivicNumber    string
	OwnerFirstName string
	OwnerLastName  string
	LotNumber      string
	Matricule      string
	Interactive    bool
	Output         string
}

func NewSearchCommand(cfg *config.Configuration) *cobra.Command {
	opts := searchOptions{
		Scope:      string(models.ScopeMunicipality),
		SearchType: string(models.SearchTypeAddress),
		Output:     outputTable,
	}

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties",
		Example: `  # Search an address in Montréal
  property search --in 66023 --street-name Sherbrooke --civic-number 1200

  # Search by owner against a remote backend
  property search --backend-url http://localhost:8080 --type owner --in 66023 --owner-first-name Marie --owner-last-name Tremblay

  # Search a collection by address and export the result as a roll
  property search --scope collection --in heritage --street-name Trésor --civic-number 10 -o yaml

  # Fill the form interactively
  property search -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateClientConfiguration(cfg); err != nil {
				return err
			}
			if err := validateSearchOptions(opts); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			remote, closeRemote, err := newRemote(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRemote()

			sched := scheduler.NewScheduler(cfg.Client.NumWorkers)
			defer sched.Close()

			notifier := newNotifier(cmd.ErrOrStderr())
			var comp *components.PropertySearch
			if models.Scope(opts.Scope) == models.ScopeCollection {
				comp = components.NewCollectionSearch(sched, remote, notifier)
			} else {
				comp = components.NewMunicipalSearch(sched, remote, notifier)
			}

			var driver prompt.Driver
			if opts.Interactive {
				driver = prompt.NewSurveyDriver()
			}

			records, err := runSearch(ctx, comp, opts, driver)
			if err != nil {
				return err
			}

			return printRecords(cmd.OutOrStdout(), records, opts.Output)
		},
	}

	registerClientFlagSets(searchCmd, cfg, func(nfs *cobrautil.NamedFlagSets) {
		searchFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Search"))
		registerSearchFlags(searchFlagSet, &opts)
	})

	return searchCmd
}

// runSearch initializes the component, fills its form from the options or
// from the prompt driver when set, and runs the search.
func runSearch(ctx context.Context, comp *components.PropertySearch, opts searchOptions, driver prompt.Driver) ([]models.PropertyRecord, error) {
	if err := waitInitialized(ctx, comp.Initialize()); err != nil {
		return nil, notified(err)
	}

	view := presenter.NewSearchView(comp.State())
	if view.Gate.NotConfigured {
		return nil, notified(ErrNotConfigured)
	}

	var err error
	if driver != nil {
		err = fillSearchInteractive(ctx, comp, driver)
	} else {
		err = fillSearchFromOptions(comp, opts)
	}
	if err != nil {
		return nil, err
	}

	records, err := comp.Search(ctx)
	if err != nil {
		return nil, notified(err)
	}

	return records, nil
}

func fillSearchFromOptions(comp *components.PropertySearch, opts searchOptions) error {
	state := comp.State()

	if err := comp.SetSearchType(models.SearchType(opts.SearchType)); err != nil {
		return err
	}

	selector := models.FieldMunicipality
	if state.Scope == models.ScopeCollection {
		selector = models.FieldCollection
	}

	values := []lo.Tuple2[models.Field, string]{
		lo.T2(selector, opts.Selection),
		lo.T2(models.FieldStreetName, opts.StreetName),
		lo.T2(models.FieldCivicNumber, opts.CivicNumber),
		lo.T2(models.FieldOwnerFirstName, opts.OwnerFirstName),
		lo.T2(models.FieldOwnerLastName, opts.OwnerLastName),
		lo.T2(models.FieldLotNumber, opts.LotNumber),
		lo.T2(models.FieldMatricule, opts.Matricule),
	}
	for _, v := range values {
		if v.B == "" {
			continue
		}
		if err := comp.SetField(v.A, v.B); err != nil {
			return err
		}
	}

	return nil
}

func fillSearchInteractive(ctx context.Context, comp *components.PropertySearch, driver prompt.Driver) error {
	state := comp.State()
	view := presenter.NewSearchView(state)

	selector, label := models.FieldMunicipality, "Municipality"
	if state.Scope == models.ScopeCollection {
		selector, label = models.FieldCollection, "Collection"
	}

	selection, err := driver.Select(ctx, label, toChoices(view.SelectorOptions), state.Form.Selection)
	if err != nil {
		return err
	}
	if err := comp.SetField(selector, selection); err != nil {
		return err
	}

	if len(view.SearchTypeOptions) > 1 {
		searchType, err := driver.Select(ctx, "Search type", toChoices(view.SearchTypeOptions), string(state.SearchType))
		if err != nil {
			return err
		}
		if err := comp.SetSearchType(models.SearchType(searchType)); err != nil {
			return err
		}
	}

	view = presenter.NewSearchView(comp.State())

	var inputs []lo.Tuple2[models.Field, string]
	switch {
	case view.ShowAddress:
		inputs = []lo.Tuple2[models.Field, string]{
			lo.T2(models.FieldStreetName, "Street name"),
			lo.T2(models.FieldCivicNumber, "Civic number"),
		}
	case view.ShowOwner:
		inputs = []lo.Tuple2[models.Field, string]{
			lo.T2(models.FieldOwnerFirstName, "Owner first name"),
			lo.T2(models.FieldOwnerLastName, "Owner last name"),
		}
	case view.ShowLot:
		inputs = []lo.Tuple2[models.Field, string]{lo.T2(models.FieldLotNumber, "Lot number")}
	case view.ShowMatricule:
		inputs = []lo.Tuple2[models.Field, string]{lo.T2(models.FieldMatricule, "Matricule")}
	}

	for _, in := range inputs {
		value, err := driver.Input(ctx, in.B, "")
		if err != nil {
			return err
		}
		if err := comp.SetField(in.A, value); err != nil {
			return err
		}
	}

	return nil
}

func toChoices(options []presenter.Option) []prompt.Choice {
	return lo.Map(options, func(o presenter.Option, _ int) prompt.Choice {
		return prompt.Choice{Label: o.Label, Value: o.Value}
	})
}

func printRecords(out io.Writer, records []models.PropertyRecord, output string) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v1.NewSearchResponse(records))
	case outputYAML:
		return roll.FromModels(records).Write(out)
	}

	if len(records) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MATRICULE\tLOT\tADDRESS\tLOCATION\tOWNER\tVALUE")
	for _, r := range records {
		location := r.MunicipalityName
		if location == "" {
			location = r.Collection
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s %s\t%d\n",
			r.Matricule, r.LotNumber, r.CivicNumber, r.StreetName, location, r.OwnerFirstName, r.OwnerLastName, r.AssessedValue)
	}
	return w.Flush()
}

func validateSearchOptions(opts searchOptions) error {
	switch models.Scope(opts.Scope) {
	case models.ScopeMunicipality, models.ScopeCollection:
	default:
		return fmt.Errorf("invalid scope %q: must be %q or %q", opts.Scope, models.ScopeMunicipality, models.ScopeCollection)
	}

	if _, err := models.ParseSearchType(opts.SearchType); err != nil {
		return err
	}

	switch opts.Output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("invalid output %q: must be %q, %q or %q", opts.Output, outputTable, outputJSON, outputYAML)
	}

	return nil
}

func registerSearchFlags(flagSet *pflag.FlagSet, opts *searchOptions) {
	flagSet.StringVar(&opts.Scope, "scope", opts.Scope, "What to search: municipality or collection")
	flagSet.StringVarP(&opts.SearchType, "type", "t", opts.SearchType, "Search type: address, owner, lot or matricule")
	flagSet.StringVar(&opts.Selection, "in", opts.Selection, "Municipality code or collection name to search in")
	flagSet.StringVar(&opts.StreetName, "street-name", opts.StreetName, "Street name (address search)")
	flagSet.StringVar(&opts.CivicNumber, "civic-number", opts.CivicNumber, "Civic number (address search)")
	flagSet.StringVar(&opts.OwnerFirstName, "owner-first-name", opts.OwnerFirstName, "Owner first name (owner search)")
	flagSet.StringVar(&opts.OwnerLastName, "owner-last-name", opts.OwnerLastName, "Owner last name (owner search)")
	flagSet.StringVar(&opts.LotNumber, "lot-number", opts.LotNumber, "Lot number (lot search)")
	flagSet.StringVar(&opts.Matricule, "matricule", opts.Matricule, "Matricule (matricule search)")
	flagSet.BoolVarP(&opts.Interactive, "interactive", "i", opts.Interactive, "Fill the search form interactively")
	flagSet.StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: table, json or yaml")
}
