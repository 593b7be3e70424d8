package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffExtensions(from, to *ir.Schema) []MigrationOp {
	var ops []MigrationOp
	fromExt := withoutImplicit(from.Extensions)
	toExt := withoutImplicit(to.Extensions)
	setDiff(fromExt, toExt,
		func(_ string, ext *ir.Extension) { ops = append(ops, CreateExtension{Extension: ext}) },
		func(_ string, _, _ *ir.Extension) {},
		func(name string, _ *ir.Extension) { ops = append(ops, DropExtension{Name: name}) },
	)
	return ops
}

func withoutImplicit(m map[string]*ir.Extension) map[string]*ir.Extension {
	out := make(map[string]*ir.Extension, len(m))
	for k, v := range m {
		if k == ir.ImplicitExtension {
			continue
		}
		out[k] = v
	}
	return out
}
