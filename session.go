package papergrade

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAnalysisLimit caps analyses per session. A simple counter, not a
// rate-limiting guarantee.
const DefaultAnalysisLimit = 25

// Session carries the mutable state of one user interaction with the
// pipeline. The core components stay stateless between calls; callers own
// the session and pass it into entry points that need usage accounting.
type Session struct {
	ID             string
	StartedAt      time.Time
	AnalysisLimit  int
	CrawlsRun      int
	AnalysesRun    int
	PagesExtracted int
	LastReport     *Report
}

// NewSession creates a Session with a fresh identifier and the default
// analysis limit.
func NewSession() *Session {
	return &Session{
		ID:            uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		AnalysisLimit: DefaultAnalysisLimit,
	}
}

// AllowAnalysis reports whether another analysis may run in this session.
// A non-positive limit disables the cap.
func (s *Session) AllowAnalysis() bool {
	return s.AnalysisLimit <= 0 || s.AnalysesRun < s.AnalysisLimit
}

// RecordCrawl accounts for a completed crawl.
func (s *Session) RecordCrawl(pages int) {
	s.CrawlsRun++
	s.PagesExtracted += pages
}

// RecordAnalysis accounts for a completed analysis run.
func (s *Session) RecordAnalysis(r *Report) {
	s.AnalysesRun++
	s.LastReport = r
}
