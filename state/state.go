// Package state holds the in-memory provider caches mirroring the
// repositories. Providers apply mutations optimistically and roll back to a
// pre-mutation snapshot when the repository call fails; the durable store
// stays authoritative and caches can always be rebuilt from it.
package state

// runOptimistic funnels every provider mutation through one entry point:
// apply the change to the in-memory cache, commit it through the repository,
// and on failure restore the snapshot and emit exactly one notification.
// There are no automatic retries.
func runOptimistic(notifier Notifier, failureTitle string, apply func(), commit func() error, rollback func()) error {
	apply()
	if err := commit(); err != nil {
		rollback()
		notifier.Error(failureTitle)
		return err
	}
	return nil
}
