package fixture

// State signature attribute names fixtures may condition on.
const (
	AttrClean       = "clean"
	AttrStaged      = "staged"
	AttrProtected   = "protected"
	AttrConflicts   = "conflicts"
	AttrLargeStaged = "large-staged"
	// AttrForce is derived from the invocation, not the state: it reports
	// whether the substituted command carries a --force flag
	AttrForce = "force"
)

// DefaultRegistry declares the built-in fixture set. Outputs are not filled
// here; callers load them from the embedded defaults or a fixture directory.
//
// Registration order is part of the contract: within one intent, fixtures
// that should win specificity ties are registered first.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&Fixture{
		Intent:   "commit",
		Scenario: "unmerged",
		Status:   Failure,
		Conditions: map[string]string{
			AttrConflicts: "true",
		},
	})
	r.Register(&Fixture{
		Intent:   "commit",
		Scenario: "large-file",
		Status:   Blocked,
		Reason:   "oversized-file policy",
		Conditions: map[string]string{
			AttrLargeStaged: "true",
		},
	})
	r.Register(&Fixture{
		Intent:   "commit",
		Scenario: "nothing-to-commit",
		Status:   Failure,
		Conditions: map[string]string{
			AttrStaged: "false",
		},
	})
	r.Register(&Fixture{
		Intent:   "commit",
		Scenario: "success",
		Status:   Success,
		Conditions: map[string]string{
			AttrStaged:      "true",
			AttrConflicts:   "false",
			AttrLargeStaged: "false",
		},
		Effects: []string{"clear-staged", "set-clean"},
	})

	r.Register(&Fixture{
		Intent:   "push",
		Scenario: "protected",
		Status:   Blocked,
		Reason:   "protected-branch policy",
		Conditions: map[string]string{
			AttrProtected: "true",
			AttrForce:     "false",
		},
	})
	r.Register(&Fixture{
		Intent:   "push",
		Scenario: "forced",
		Status:   Success,
		Conditions: map[string]string{
			AttrProtected: "true",
			AttrForce:     "true",
		},
	})
	r.Register(&Fixture{
		Intent:   "push",
		Scenario: "success",
		Status:   Success,
		Conditions: map[string]string{
			AttrProtected: "false",
		},
	})

	r.Register(&Fixture{
		Intent:   "branch",
		Scenario: "success",
		Status:   Success,
		Effects:  []string{"set-branch:$BRANCH"},
	})

	r.Register(&Fixture{
		Intent:   "status",
		Scenario: "clean",
		Status:   Success,
		Conditions: map[string]string{
			AttrClean: "true",
		},
	})
	r.Register(&Fixture{
		Intent:   "status",
		Scenario: "dirty",
		Status:   Success,
		Conditions: map[string]string{
			AttrClean: "false",
		},
	})

	r.Register(&Fixture{
		Intent:   "merge",
		Scenario: "unmerged",
		Status:   Failure,
		Conditions: map[string]string{
			AttrConflicts: "true",
		},
	})
	r.Register(&Fixture{
		Intent:   "merge",
		Scenario: "overwrite",
		Status:   Failure,
		Conditions: map[string]string{
			AttrClean:     "false",
			AttrConflicts: "false",
		},
	})
	r.Register(&Fixture{
		Intent:   "merge",
		Scenario: "success",
		Status:   Success,
		Conditions: map[string]string{
			AttrClean: "true",
		},
	})

	return r
}
