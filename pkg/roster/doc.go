// Package roster defines the people, teams, locks and plans that the
// assignment solver works on.
//
// A [Team] lists ordered [Position] instances; a [Person] fills at most one of
// them across all teams. [AssignmentLock] values pin a person to a role or
// hold them out of the solve, and a [Plan] records the outcome along with the
// positions left open and the people left over.
//
// Dates are calendar days ([Date]) so that rotation arithmetic never depends
// on time of day or zone.
package roster
