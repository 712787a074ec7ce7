// Package io reads and writes dutyflow save states and plan reports.
//
// # Save States
//
// A [SaveState] captures everything needed to reproduce a session: the
// analysis date, people, teams, qualification definitions and locks. It is
// stored as JSON:
//
//	{
//	  "analysis_date": "2025-01-15",
//	  "people": [{"name": "SMITH, JOHN", "raterank": "AM2", ...}],
//	  "teams": [{"name": "QA", "required_positions": [...]}],
//	  "qual_defs": {"120 CDI": ["CDI 120"]},
//	  "persistent_locks": [{"person_name": "SMITH, JOHN", ...}],
//	  "export_timestamp": "2025-01-15T09:30:00Z",
//	  "version": "v1.2.0"
//	}
//
// [ReadState] rejects states written by another build version, states
// without people or teams, and locks that name a person, team or position
// the state does not contain.
//
// # Plan Reports
//
// [WritePlan] renders a plan as CSV, JSON or YAML. The CSV form has three
// sections, Assigned People, Vacant Positions and Unassigned People, each
// with a Person, Team, Qualification header.
package io
