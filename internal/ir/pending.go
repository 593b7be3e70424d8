package ir

// PendingPolicy queues a CREATE POLICY whose target table may not yet
// exist in the schema being assembled (spec §3 Lifecycles, §4.3.4: "A
// policy created before its table definition in the same file is
// queued in pending_policies and attached during finalize").
type PendingPolicy struct {
	Namespace string
	Table     string
	Policy    *Policy
}

// PendingOwner queues an `OWNER TO` assignment for an object that may
// not yet be present.
type PendingOwner struct {
	Class ObjectClass
	Key   string // the object's canonical key within its class
	Owner string
}

// PendingGrant queues a GRANT whose target object may not yet be present.
type PendingGrant struct {
	Class ObjectClass
	Key   string
	Grant *Grant
}

// PendingRevoke queues a REVOKE whose target object may not yet be present.
type PendingRevoke struct {
	Class          ObjectClass
	Key            string
	Grantee        string
	Privileges     []string
	GrantOptionFor bool // REVOKE GRANT OPTION FOR ... : clears WithGrantOption, keeps privileges
}
