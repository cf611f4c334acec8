package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Symantec/sql-login-validation/lib/reconcile"
)

func boolCell(value *bool) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *value)
}

func printResults(w io.Writer, results []reconcile.ValidationResult, detailed bool, format string) error {
	switch format {
	case "json":
		return printJSON(w, results, detailed)
	case "table":
		return printTable(w, results, detailed)
	}
	return errors.New("bad output format (want table or json)")
}

func printJSON(w io.Writer, results []reconcile.ValidationResult, detailed bool) error {
	encoder := json.NewEncoder(w)
	for _, result := range results {
		if err := encoder.Encode(reconcile.Project(result, detailed)); err != nil {
			return err
		}
	}
	return nil
}

func printTable(w io.Writer, results []reconcile.ValidationResult, detailed bool) error {
	table := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	header := "SERVER\tLOGIN\tKIND\tFOUND\tDISABLED\tENABLED\tPWEXPIRED\tLOCKEDOUT\tPWNOTREQD"
	if detailed {
		header += "\tCANTCHANGEPW\tREVERSIBLEENC\tPWNEVEREXPIRES\tSMARTCARD\tDELEGATION\tNOTDELEGATED"
	}
	fmt.Fprintln(table, header)
	for _, result := range results {
		view := reconcile.Project(result, detailed)
		line := fmt.Sprintf("%s\t%s\t%s\t%v\t%v\t%s\t%s\t%s\t%s",
			view.Server, view.ServerIdentity, view.Kind, view.Found, view.DisabledOnServer,
			boolCell(view.Enabled), boolCell(view.PasswordExpired),
			boolCell(view.LockedOut), boolCell(view.PasswordNotRequired))
		if detailed {
			line += fmt.Sprintf("\t%s\t%s\t%s\t%s\t%s\t%s",
				boolCell(view.CannotChangePassword), boolCell(view.ReversibleEncryptionAllowed),
				boolCell(view.PasswordNeverExpires), boolCell(view.SmartcardRequired),
				boolCell(view.TrustedForDelegation), boolCell(view.AccountNotDelegated))
		}
		fmt.Fprintln(table, line)
	}
	return table.Flush()
}
