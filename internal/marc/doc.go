// Package marc cleans and harmonizes the art-criticism bibliographic records.
//
// The raw export is a wide CSV of MARC fields whose values pack subfields into
// one cell with $$ delimiters ("$$aSurname, Name$$4aut"). Cleaning expands
// those into per-subfield columns, keeps only review records written by
// authors or reviewers, normalizes person names and titles, and harmonizes
// the reviewed work, its author and the publishing institution into three
// canonical columns. Rows that fall out of the filters are kept in a separate
// table with the reason, for inspection.
package marc
