package main

import (
	"errors"
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/Symantec/sql-login-validation/lib/directory"
	"github.com/Symantec/sql-login-validation/lib/directory/addirectory"
	"github.com/Symantec/sql-login-validation/lib/reconcile"
	"gopkg.in/yaml.v2"
)

type baseConfig struct {
	// One storage URL per target server, scheme selects the backend:
	// sqlserver:// for a live instance, postgresql:// or sqlite: for a
	// principal snapshot table.
	TargetServers []string `yaml:"target_servers"`
	Detailed      bool     `yaml:"detailed"`
	OutputFormat  string   `yaml:"output_format"`
}

type auditConfig struct {
	IncludeNames    []string `yaml:"include_names"`
	ExcludeNames    []string `yaml:"exclude_names"`
	KindFilter      string   `yaml:"kind_filter"`
	ExcludedDomains []string `yaml:"excluded_domains"`
}

type AppConfigFile struct {
	Base      baseConfig                    `yaml:"base"`
	Audit     auditConfig                   `yaml:"audit"`
	Directory addirectory.ADDirectorySource `yaml:"directory_config"`
}

type RuntimeState struct {
	Config   AppConfigFile
	Resolver directory.Resolver
	Options  reconcile.Options
}

var (
	configFilename = flag.String("config", "config.yml", "The filename of the configuration")
	detailed       = flag.Bool("detailed", false, "show all decoded account-control attributes")
	outputFormat   = flag.String("format", "", "output format: table or json (overrides config)")
)

func parseKindFilter(value string) (reconcile.KindFilter, error) {
	switch value {
	case "":
		return reconcile.KindFilterNone, nil
	case "users":
		return reconcile.KindFilterUsersOnly, nil
	case "groups":
		return reconcile.KindFilterGroupsOnly, nil
	}
	return reconcile.KindFilterNone, errors.New("bad kind_filter value (want users or groups)")
}

//parses the config file
func loadConfig(configFilename string) (RuntimeState, error) {

	var state RuntimeState

	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		err = errors.New("missing config file failure")
		return state, err
	}

	source, err := ioutil.ReadFile(configFilename)
	if err != nil {
		err = errors.New("cannot read config file")
		return state, err
	}

	err = yaml.Unmarshal(source, &state.Config)
	if err != nil {
		err = errors.New("Cannot parse config file")
		log.Printf("Source=%s", source)
		return state, err
	}

	kindFilter, err := parseKindFilter(state.Config.Audit.KindFilter)
	if err != nil {
		return state, err
	}
	state.Options = reconcile.Options{
		IncludeNames:    state.Config.Audit.IncludeNames,
		ExcludeNames:    state.Config.Audit.ExcludeNames,
		KindFilter:      kindFilter,
		ExcludedDomains: state.Config.Audit.ExcludedDomains,
		Detailed:        state.Config.Base.Detailed,
	}
	state.Resolver = &state.Config.Directory
	return state, nil
}

func main() {
	flag.Parse()

	state, err := loadConfig(*configFilename)
	if err != nil {
		panic(err)
	}
	if *detailed {
		state.Options.Detailed = true
	}
	format := state.Config.Base.OutputFormat
	if *outputFormat != "" {
		format = *outputFormat
	}
	if format == "" {
		format = "table"
	}

	engine := reconcile.NewEngine(state.Resolver, state.Options)
	exitCode := 0
	for _, storageURL := range state.Config.Base.TargetServers {
		source, err := openPrincipalSource(storageURL)
		if err != nil {
			log.Printf("cannot connect to %s: %s", storageURL, err)
			exitCode = 1
			continue
		}
		principals, err := source.listPrincipals()
		source.Close()
		if err != nil {
			log.Printf("cannot read principals from %s: %s", source.server, err)
			exitCode = 1
			continue
		}

		filtered := reconcile.FilterPrincipals(principals, state.Options)
		results := engine.Reconcile(filtered)
		err = printResults(os.Stdout, results, state.Options.Detailed, format)
		if err != nil {
			log.Println(err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
