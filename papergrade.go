// Package papergrade provides a whitepaper-ingestion and scoring pipeline
// for cryptocurrency projects. It classifies a target URL as a direct PDF,
// a PDF-viewer page, or a documentation site, crawls documentation sites
// into ordered page records, sends extracted text to a chat-completion
// provider for per-aspect evaluation, and parses numeric scores out of the
// free-text analysis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, perplexity/, gofpdf/),
// with orchestration packages named after their function (crawl/, analyze/).
package papergrade
