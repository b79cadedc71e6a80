package news

// EnrichedArticle is an article with a generated summary, the place the
// summary names, and that place's coordinates. Field names are part of the
// /api/news contract.
type EnrichedArticle struct {
	Title     string  `json:"Title"`
	Summary   string  `json:"Summary"`
	URL       string  `json:"URL"`
	Location  string  `json:"Location"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// Stage names the pipeline step at which an article was dropped.
type Stage string

const (
	StageInput     Stage = "input"
	StageSummarize Stage = "summarize"
	StageGeocode   Stage = "geocode"
	StageCancelled Stage = "cancelled"
)

// SkippedArticle records why an article is missing from a Result.
type SkippedArticle struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Stage    Stage  `json:"stage"`
	Location string `json:"location,omitempty"`
	Reason   string `json:"reason"`
}

// Result is the outcome of one enrichment run. Articles and Skipped are both
// in headline-source order; Total is the number of raw articles fetched.
type Result struct {
	Articles []EnrichedArticle `json:"articles"`
	Skipped  []SkippedArticle  `json:"skipped"`
	Total    int               `json:"total"`
}

// Partial reports whether any fetched article was dropped.
func (r *Result) Partial() bool {
	return len(r.Skipped) > 0
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}
