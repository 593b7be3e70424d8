package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffSequences(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Sequences, to.Sequences,
		func(_ string, s *ir.Sequence) { ops = append(ops, CreateSequence{Sequence: s}) },
		func(_ string, oldSeq, newSeq *ir.Sequence) {
			changes := sequenceChanges(oldSeq, newSeq)
			if !changes.IsEmpty() {
				ops = append(ops, AlterSequence{Namespace: newSeq.Namespace, Name: newSeq.Name, Changes: changes})
			}
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassSequence, newSeq.Namespace, newSeq.Name, nil, oldSeq.Owner, newSeq.Owner, oldSeq.Grants, newSeq.Grants)...)
		},
		func(_ string, s *ir.Sequence) { ops = append(ops, DropSequence{Namespace: s.Namespace, Name: s.Name}) },
	)
	return ops
}

func sequenceChanges(from, to *ir.Sequence) SequenceChanges {
	var c SequenceChanges
	if from.Increment != to.Increment {
		v := to.Increment
		c.Increment = &v
	}
	if from.Min != to.Min {
		v := to.Min
		c.Min = &v
	}
	if from.Max != to.Max {
		v := to.Max
		c.Max = &v
	}
	if from.Cache != to.Cache {
		v := to.Cache
		c.Cache = &v
	}
	if from.Cycle != to.Cycle {
		v := to.Cycle
		c.Cycle = &v
	}
	return c
}
