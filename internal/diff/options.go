package diff

// Options controls the opportunistic ownership/grant emission spec
// §4.4.2 describes: "emitted opportunistically during the normal
// per-object walk when manage_ownership / manage_grants configuration
// flags are set".
type Options struct {
	ManageOwnership bool
	ManageGrants    bool
}
