// Package scanner walks synchronized folders and reports naming hazards.
//
// A Scanner visits every directory level of a folder exactly once, top-down,
// and hands the names of each level to the hazard package. Findings are
// produced lazily through an iter.Seq, so a consumer may stop early and a
// second range over the same sequence walks the tree again.
//
// Symbolic links are listed as entries of their parent and inspected like
// any other name, but they are never followed.
package scanner
