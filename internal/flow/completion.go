package flow

// IsStepCompleted reports whether step no longer blocks forward navigation.
// Only the selection step has a condition: one of its options must be chosen.
func IsStepCompleted(step Step, sel SelectionReader) bool {
	if step == StepSelection {
		return sel != nil && sel.IsAnySelected()
	}
	return true
}
