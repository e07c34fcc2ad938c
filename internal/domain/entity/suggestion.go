package entity

// SuggestionCount is the exact number of ideas returned per call.
const SuggestionCount = 3

// HistoryLimit caps how many existing gifts are fed into the prompt.
const HistoryLimit = 20

// Principal is the authenticated caller. A nil *Principal means anonymous.
type Principal struct {
	UserID string
}

type SuggestionRequest struct {
	PersonID   string
	OccasionID int
	Hint       *string

	// Accepted from the client but not used when building the prompt.
	BudgetMin *float64
	BudgetMax *float64
}

type PersonContext struct {
	ID       string
	Name     string
	Birthday *string // ISO date, e.g. "1961-04-02"
	Notes    *string
}

type Occasion struct {
	ID   int
	Name string
}

type GiftHistoryItem struct {
	Title  string
	Status string
}

// HistoryResult separates "no gifts yet" from "lookup failed, continued without".
type HistoryResult struct {
	Items    []GiftHistoryItem
	FetchErr error
}

func (h HistoryResult) Degraded() bool {
	return h.FetchErr != nil
}

// SuggestionContext is everything the prompt needs about the person and occasion.
type SuggestionContext struct {
	Person   PersonContext
	Occasion Occasion
	History  HistoryResult
}

type Suggestion struct {
	Title     string
	Reason    string
	Category  string
	PriceHint string
	LinkQuery string // not produced by the backend schema; empty unless set by the caller
}

// SuggestionSet is fixed-size so a short or long set cannot be constructed.
type SuggestionSet [SuggestionCount]Suggestion

// GenerationRequest is what a Generator sends to the model backend.
type GenerationRequest struct {
	Prompt          string
	SchemaName      string
	Schema          map[string]any
	MaxOutputTokens int
}

// ModelResponse is the raw backend answer before validation.
type ModelResponse struct {
	Text         string
	ResponseID   string
	FinishReason string
	Model        string
	TokenCount   int
}
