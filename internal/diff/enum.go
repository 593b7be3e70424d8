package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffEnums(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Enums, to.Enums,
		func(_ string, e *ir.Enum) { ops = append(ops, CreateEnum{Enum: e}) },
		func(_ string, oldEnum, newEnum *ir.Enum) {
			ops = append(ops, diffEnumValues(oldEnum, newEnum)...)
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassType, newEnum.Namespace, newEnum.Name, nil, oldEnum.Owner, newEnum.Owner, oldEnum.Grants, newEnum.Grants)...)
		},
		func(_ string, e *ir.Enum) { ops = append(ops, DropEnum{Namespace: e.Namespace, Name: e.Name}) },
	)
	return ops
}

// diffEnumValues implements spec §4.4.2's enum rule: each value
// present in `to` but not `from` becomes an AddEnumValue anchored to
// its neighbor so the resulting order matches `to`. Value removal has
// no corresponding op (Postgres can't drop enum values; see Open
// Questions).
func diffEnumValues(from, to *ir.Enum) []MigrationOp {
	existing := make(map[string]bool, len(from.Values))
	for _, v := range from.Values {
		existing[v] = true
	}

	var ops []MigrationOp
	for i, v := range to.Values {
		if existing[v] {
			continue
		}
		op := AddEnumValue{Namespace: to.Namespace, Name: to.Name, Value: v}
		switch {
		case len(to.Values) == 1:
			op.Position = EnumPositionNone
		case i > 0:
			op.Position = EnumPositionAfter
			op.Anchor = to.Values[i-1]
		default:
			op.Position = EnumPositionBefore
			op.Anchor = to.Values[1]
		}
		ops = append(ops, op)
	}
	return ops
}
