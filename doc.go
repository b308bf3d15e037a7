// Package dropcore is the waitlist priority and atomic claim engine for
// capacity-limited drops.
//
// Users join a drop's waitlist before its claim window opens; each join gets
// a deterministic priority score derived from join order, account age, and
// the user's other waitlist memberships. Once the window opens, Claim decides
// under a per-drop exclusive lock whether the caller converts their entry
// into one of the drop's slots: exactly once, never over capacity, ranked by
// score descending with join time and entry id as tie-breaks.
//
// Transport, authentication, and drop administration are collaborators: they
// hand the engine a resolved user id and call the Engine methods.
package dropcore
