package models

type TranscribeResponse struct {
	SessionID  string `json:"session_id"`
	Transcript string `json:"transcript"`
	Format     string `json:"format"`
}

type GenerateAnswerRequest struct {
	SessionID  string `json:"session_id"`
	Transcript string `json:"transcript"`
	Model      string `json:"model"`
	Position   string `json:"position"`
	JobPosting string `json:"job_posting"`
	Resume     string `json:"resume"`
}

type GenerateAnswerResponse struct {
	SessionID   string `json:"session_id,omitempty"`
	ShortAnswer string `json:"short_answer"`
	LongAnswer  string `json:"long_answer"`
}

type ResumeResponse struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}

type ModelsResponse struct {
	Models          []string `json:"models"`
	DefaultModel    string   `json:"default_model"`
	DefaultPosition string   `json:"default_position"`
}

type HistoryEntry struct {
	SessionID   string  `json:"session_id"`
	Position    string  `json:"position"`
	Transcript  string  `json:"transcript"`
	ShortAnswer string  `json:"short_answer"`
	LongAnswer  string  `json:"long_answer"`
	Score       float32 `json:"score,omitempty"`
}

type HistorySearchResponse struct {
	Query   string         `json:"query"`
	Results []HistoryEntry `json:"results"`
}
