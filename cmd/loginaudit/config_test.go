package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/Symantec/sql-login-validation/lib/reconcile"
	"gopkg.in/yaml.v2"
)

func writeConfig(filename string, config *AppConfigFile) error {
	fileBytes, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, fileBytes, 0644)
}

func TestLoadConfigFileBase(t *testing.T) {
	dir, err := ioutil.TempDir("", "config_testing")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir) // clean up
	configFilename := filepath.Join(dir, "config-test.yml")

	appConfig := AppConfigFile{}
	appConfig.Base.TargetServers = []string{"sqlite:" + filepath.Join(dir, "demodb.sqlite")}
	appConfig.Base.Detailed = true
	appConfig.Audit.IncludeNames = []string{"CORP\\alice"}
	appConfig.Audit.ExcludedDomains = []string{"OLDDOMAIN"}
	appConfig.Audit.KindFilter = "users"
	appConfig.Directory.LDAPTargetURLs = "ldaps://dc01.corp.example.com"
	appConfig.Directory.SearchBaseDNs = "dc=corp,dc=example,dc=com"
	err = writeConfig(configFilename, &appConfig)
	if err != nil {
		t.Fatal(err)
	}

	state, err := loadConfig(configFilename)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Config.Base.TargetServers) != 1 {
		t.Fatal("invalid number of target servers")
	}
	if state.Options.KindFilter != reconcile.KindFilterUsersOnly {
		t.Errorf("bad kind filter: %v", state.Options.KindFilter)
	}
	if !state.Options.Detailed {
		t.Error("detailed flag did not make it into the options")
	}
	if len(state.Options.ExcludedDomains) != 1 || state.Options.ExcludedDomains[0] != "OLDDOMAIN" {
		t.Errorf("bad excluded domains: %v", state.Options.ExcludedDomains)
	}
	if state.Resolver == nil {
		t.Error("resolver should be wired from the directory config")
	}
}

func TestLoadConfigFileBadKindFilter(t *testing.T) {
	dir, err := ioutil.TempDir("", "config_testing")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir) // clean up
	configFilename := filepath.Join(dir, "config-test.yml")

	appConfig := AppConfigFile{}
	appConfig.Audit.KindFilter = "computers"
	err = writeConfig(configFilename, &appConfig)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(configFilename); err == nil {
		t.Fatal("bad kind_filter value must be rejected")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := loadConfig("/nonexistent/config.yml"); err == nil {
		t.Fatal("missing config file must be an error")
	}
}

func TestParseKindFilter(t *testing.T) {
	if value, err := parseKindFilter(""); err != nil || value != reconcile.KindFilterNone {
		t.Error("empty kind_filter should mean no filter")
	}
	if value, err := parseKindFilter("groups"); err != nil || value != reconcile.KindFilterGroupsOnly {
		t.Error("groups should select the group filter")
	}
	if _, err := parseKindFilter("Users"); err == nil {
		t.Error("kind_filter values are lowercase only")
	}
}
