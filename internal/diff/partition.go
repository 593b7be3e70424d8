package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffPartitions(from, to *ir.Schema) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Partitions, to.Partitions,
		func(_ string, p *ir.PartitionDescriptor) { ops = append(ops, CreatePartition{Partition: p}) },
		func(_ string, _, _ *ir.PartitionDescriptor) {},
		func(_ string, p *ir.PartitionDescriptor) {
			ops = append(ops, DropPartition{Namespace: p.ChildNamespace, Name: p.ChildTable})
		},
	)
	return ops
}
