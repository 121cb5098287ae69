package main

import (
	"encoding/json"
	"fmt"

	"github.com/trezcool/eduverse/core/classroom"
)

var errUnknownVariant = fmt.Errorf("unknown scene variant, want %s or %s", classroom.VariantModels, classroom.VariantPrimitives)

func (cli *commandLine) describeScene(variant string, asJSON bool) error {
	scene, ok := classroom.Variant(variant)
	if !ok {
		return errUnknownVariant
	}
	if err := scene.Validate(cli.validate); err != nil {
		return err
	}
	g := classroom.Build(scene)

	if asJSON {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	fmt.Fprintf(cli.out, "scene %s: %d seats\n", scene.Name, scene.Layout.Capacity())
	for _, kind := range []string{classroom.KindGroup, classroom.KindMesh, classroom.KindModel, classroom.KindLight, classroom.KindText} {
		fmt.Fprintf(cli.out, "  %-6s %d\n", kind, g.Count(kind))
	}
	for _, ref := range scene.ModelRefs() {
		fmt.Fprintf(cli.out, "  asset  %s\n", ref)
	}
	return nil
}
