// Package furnex extracts furniture product names from web pages and
// measures how well the extraction matches a hand-labeled sample.
// Pages are fetched, flattened to plain text, scanned for furniture
// keywords, and the words around each keyword become product candidates.
//
// This package contains domain types, interfaces, and the pure extraction
// heuristic, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, goquery/, rod/).
package furnex
