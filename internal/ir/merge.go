package ir

import "github.com/schemadrift/schemadrift/internal/errs"

// Merge folds other into s, recording the origin file of each object
// so duplicate definitions across files can be reported with both
// paths (spec §4.3.6: "Duplicate object definitions across files are
// an error, identifying both file paths"). file is other's origin.
func (s *Schema) Merge(other *Schema, file string, origins map[string]string) error {
	for name, ns := range other.Namespaces {
		if _, ok := s.Namespaces[name]; !ok {
			s.Namespaces[name] = ns
		}
	}
	for name, ext := range other.Extensions {
		if _, ok := s.Extensions[name]; !ok {
			s.Extensions[name] = ext
		}
	}

	if err := mergeUnique(s.Enums, other.Enums, "enum", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Domains, other.Domains, "domain", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Sequences, other.Sequences, "sequence", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Tables, other.Tables, "table", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Partitions, other.Partitions, "partition", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Functions, other.Functions, "function", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Views, other.Views, "view", file, origins); err != nil {
		return err
	}
	if err := mergeUnique(s.Triggers, other.Triggers, "trigger", file, origins); err != nil {
		return err
	}

	s.DefaultPrivileges = append(s.DefaultPrivileges, other.DefaultPrivileges...)
	s.PendingPolicies = append(s.PendingPolicies, other.PendingPolicies...)
	s.PendingOwners = append(s.PendingOwners, other.PendingOwners...)
	s.PendingGrants = append(s.PendingGrants, other.PendingGrants...)
	s.PendingRevokes = append(s.PendingRevokes, other.PendingRevokes...)
	s.Unsupported = append(s.Unsupported, other.Unsupported...)
	return nil
}

// mergeUnique copies entries from src into dst, erroring if a key
// already exists in dst — a duplicate definition across files.
// origins maps "<class>:<key>" to the file that first defined it, so
// the error can name both paths.
func mergeUnique[T any](dst, src map[string]T, class, file string, origins map[string]string) error {
	for key, val := range src {
		originKey := class + ":" + key
		if existingFile, ok := origins[originKey]; ok {
			return errs.ParseAt(file, 0, "duplicate %s %q already defined in %s", class, key, existingFile)
		}
		dst[key] = val
		origins[originKey] = file
	}
	return nil
}
