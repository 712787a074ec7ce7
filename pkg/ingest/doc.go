// Package ingest reads rosters and requirements from the files units keep.
//
// Four inputs make up a full load:
//
//   - Requirements CSV: Name, Qual and Num Required columns, one row per
//     team and qualification. Teams keep the order they first appear in.
//   - Qualification definitions CSV: ASM qualification name, then the
//     local name it counts as.
//   - ASM workbook: the qualification report whose first sheet lists one
//     qualification per row in column B and the holder as "NAME  RATE" in
//     column D.
//   - FLTMPS workbook: the personnel report whose PRD column gives each
//     full-time member's projected rotation date as MM/YYYY. The column
//     header is padded with non-breaking spaces.
//
// A plain roster CSV can stand in for the two workbooks.
//
// After translation to local names, people gain derived qualifications
// from their rate and existing qualifications; see [DerivedQualifications].
package ingest
