package aisuggest

type KeySuggestion struct {
	Description string `json:"description"`
	Target      string `json:"target"`
}

type SuggestionRequest struct {
	Objective string `json:"objective"`
	Quantity  int    `json:"quantity"`
}

type SuggestionResponse struct {
	Suggestions []KeySuggestion `json:"suggestions"`
}
