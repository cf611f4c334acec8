package reconcile

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/Symantec/sql-login-validation/lib/accountcontrol"
	"github.com/Symantec/sql-login-validation/lib/directory"
)

func testResult() ValidationResult {
	control := uint32(512 | accountcontrol.SmartcardRequired | accountcontrol.TrustedForDelegation)
	return ValidationResult{
		Server:             "sqlprod01",
		ServerIdentity:     "CORP\\alice",
		Domain:             "CORP",
		AccountName:        "alice",
		Kind:               directory.KindUser,
		Found:              true,
		UserAccountControl: &control,
		Attributes:         accountcontrol.Decode(&control),
	}
}

func Test_Project_SummaryHidesSensitiveAttributes(t *testing.T) {
	view := Project(testResult(), false)
	if view.CannotChangePassword != nil || view.ReversibleEncryptionAllowed != nil ||
		view.PasswordNeverExpires != nil || view.SmartcardRequired != nil ||
		view.TrustedForDelegation != nil {
		t.Error("summary view must hide the sensitive attributes")
	}
	if view.Enabled == nil || view.PasswordExpired == nil ||
		view.LockedOut == nil || view.PasswordNotRequired == nil {
		t.Error("summary view must keep the basic attributes")
	}
	if !view.Found {
		t.Error("Found must survive projection")
	}
}

func Test_Project_SummaryJSONOmitsSensitiveKeys(t *testing.T) {
	encoded, err := json.Marshal(Project(testResult(), false))
	if err != nil {
		t.Fatal(err)
	}
	text := string(encoded)
	for _, key := range []string{"smartcard_required", "trusted_for_delegation",
		"password_never_expires", "reversible_encryption_allowed", "cannot_change_password"} {
		if strings.Contains(text, key) {
			t.Errorf("summary json exposes %s: %s", key, text)
		}
	}
}

func Test_Project_NeverExposesRawFlags(t *testing.T) {
	viewType := reflect.TypeOf(ProjectedResult{})
	for i := 0; i < viewType.NumField(); i++ {
		if strings.Contains(strings.ToLower(viewType.Field(i).Name), "accountcontrol") {
			t.Errorf("projected view carries the raw flags field %s", viewType.Field(i).Name)
		}
	}
	for _, detailed := range []bool{false, true} {
		encoded, err := json.Marshal(Project(testResult(), detailed))
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(encoded), "786944") || strings.Contains(string(encoded), "user_account_control") {
			t.Errorf("detailed=%v json exposes the raw flags value: %s", detailed, encoded)
		}
	}
}

func Test_Project_DetailedShowsAllAttributes(t *testing.T) {
	view := Project(testResult(), true)
	if view.SmartcardRequired == nil || !*view.SmartcardRequired {
		t.Error("detailed view should carry SmartcardRequired")
	}
	if view.TrustedForDelegation == nil || !*view.TrustedForDelegation {
		t.Error("detailed view should carry TrustedForDelegation")
	}
	if view.CannotChangePassword == nil || *view.CannotChangePassword {
		t.Error("detailed view should carry CannotChangePassword as false")
	}
}

func Test_Project_DoesNotMutateResult(t *testing.T) {
	result := testResult()
	before := result
	Project(result, false)
	Project(result, true)
	if !reflect.DeepEqual(before, result) {
		t.Error("projection must not alter the underlying result")
	}
}

func Test_Project_NotFoundPrincipal(t *testing.T) {
	result := ValidationResult{
		Server:         "sqlprod01",
		ServerIdentity: "CORP\\gone",
		Domain:         "CORP",
		AccountName:    "gone",
		Kind:           directory.KindGroup,
	}
	view := Project(result, false)
	if view.Enabled != nil {
		t.Error("unknown attributes must project as nil")
	}
	if view.Kind != "Group" {
		t.Errorf("bad kind: %s", view.Kind)
	}
}
