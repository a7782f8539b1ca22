package aggregate

import (
	"fmt"

	"iona/internal/diag"
	"iona/internal/source"
)

// CheckImportClosure is the required post-aggregation pass (spec §7,
// §8): for every module M with recorded imports, every parsed module is
// fully resolved (parsing_status[M] == true), and every imported item is
// actually visible (public or exported) from the module it was imported
// from. Out of the parser's core scope but the interface is defined
// here so a driver can invoke it once aggregation completes.
func CheckImportClosure(mt *ModuleTable) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for module, items := range mt.ImportedItems {
		done, known := mt.ParsingStatus[module]
		if !known || !done {
			diags = append(diags, diag.New(diag.Error,
				fmt.Sprintf("module %q was imported but never parsed", module), source.Position{}))
			continue
		}
		visible := make(map[string]struct{})
		for name := range mt.PublicItems[module] {
			visible[name] = struct{}{}
		}
		for name := range mt.ExportedItems[module] {
			visible[name] = struct{}{}
		}
		for item := range items {
			if _, ok := visible[item]; !ok {
				diags = append(diags, diag.New(diag.Error,
					fmt.Sprintf("module %q has no public or exported item %q", module, item), source.Position{}))
			}
		}
	}
	return diags
}
