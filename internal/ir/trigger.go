package ir

// Trigger represents a CREATE TRIGGER, keyed
// "namespace.table.trigger" (spec §4.3.3).
type Trigger struct {
	Namespace string
	Table     string
	Name      string

	Timing TriggerTiming
	Events []TriggerEvent // stored sorted; order-insensitive comparison (P8)

	UpdateColumns []string // non-empty only when Events contains Update
	ForEachRow    bool
	When          string // WHEN condition; empty for InsteadOf

	FunctionNamespace string
	FunctionName      string
	FunctionArgs      []string

	Enabled TriggerEnabled

	// Referencing OLD/NEW TABLE aliases; valid only on After triggers.
	OldTableAlias string
	NewTableAlias string
}

type TriggerTiming string

const (
	TriggerTimingBefore    TriggerTiming = "BEFORE"
	TriggerTimingAfter     TriggerTiming = "AFTER"
	TriggerTimingInsteadOf TriggerTiming = "INSTEAD_OF"
)

type TriggerEvent string

const (
	TriggerEventInsert   TriggerEvent = "INSERT"
	TriggerEventUpdate   TriggerEvent = "UPDATE"
	TriggerEventDelete   TriggerEvent = "DELETE"
	TriggerEventTruncate TriggerEvent = "TRUNCATE"
)

// TriggerEnabled mirrors pg_trigger.tgenabled.
type TriggerEnabled string

const (
	TriggerEnabledOrigin   TriggerEnabled = "ORIGIN"
	TriggerEnabledDisabled TriggerEnabled = "DISABLED"
	TriggerEnabledReplica  TriggerEnabled = "REPLICA"
	TriggerEnabledAlways   TriggerEnabled = "ALWAYS"
)

var triggerEventOrder = []TriggerEvent{TriggerEventInsert, TriggerEventUpdate, TriggerEventDelete, TriggerEventTruncate}

// SortEvents returns events in the canonical INSERT,UPDATE,DELETE,TRUNCATE
// order so that event-set comparison is order-insensitive (P8).
func SortEvents(events []TriggerEvent) []TriggerEvent {
	set := make(map[TriggerEvent]bool, len(events))
	for _, e := range events {
		set[e] = true
	}
	out := make([]TriggerEvent, 0, len(events))
	for _, e := range triggerEventOrder {
		if set[e] {
			out = append(out, e)
		}
	}
	return out
}

// HasEvent reports whether t's event set contains ev.
func (t *Trigger) HasEvent(ev TriggerEvent) bool {
	for _, e := range t.Events {
		if e == ev {
			return true
		}
	}
	return false
}

// Key returns the canonical "namespace.table.trigger" key.
func (t *Trigger) Key() string { return TriggerKey(t.Namespace, t.Table, t.Name) }

// Validate enforces the invariants spec §3 lists for triggers,
// returning a descriptive error the parser surfaces as a Parse error
// (spec §4.3.3: "these are programmer errors the database would also
// reject").
func (t *Trigger) Validate() error {
	if t.Timing == TriggerTimingInsteadOf {
		if !t.ForEachRow {
			return errTrigger(t, "INSTEAD OF triggers must be FOR EACH ROW")
		}
		if t.When != "" {
			return errTrigger(t, "INSTEAD OF triggers cannot have a WHEN condition")
		}
		if t.OldTableAlias != "" || t.NewTableAlias != "" {
			return errTrigger(t, "INSTEAD OF triggers cannot use REFERENCING OLD/NEW TABLE")
		}
	}
	if (t.OldTableAlias != "" || t.NewTableAlias != "") && t.Timing != TriggerTimingAfter {
		return errTrigger(t, "REFERENCING OLD/NEW TABLE is only valid on AFTER triggers")
	}
	if t.OldTableAlias != "" && !(t.HasEvent(TriggerEventUpdate) || t.HasEvent(TriggerEventDelete)) {
		return errTrigger(t, "REFERENCING OLD TABLE requires an UPDATE or DELETE event")
	}
	if t.NewTableAlias != "" && !(t.HasEvent(TriggerEventInsert) || t.HasEvent(TriggerEventUpdate)) {
		return errTrigger(t, "REFERENCING NEW TABLE requires an INSERT or UPDATE event")
	}
	if len(t.UpdateColumns) > 0 && !t.HasEvent(TriggerEventUpdate) {
		return errTrigger(t, "UPDATE OF columns requires an UPDATE event")
	}
	return nil
}

func errTrigger(t *Trigger, msg string) error {
	return &validationError{object: t.Key(), message: msg}
}

type validationError struct {
	object  string
	message string
}

func (e *validationError) Error() string { return e.object + ": " + e.message }
