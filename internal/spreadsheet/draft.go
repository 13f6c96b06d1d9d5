package spreadsheet

// Draft is the unsaved OKR form state. Extraction merges into it: scalar
// fields are set independently, the key-result list is replaced wholesale or
// not at all.
type Draft struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Objective   string           `json:"objective"`
	Quarter     string           `json:"quarter"`
	Year        int              `json:"year"`
	KeyResults  []KeyResultDraft `json:"key_results"`
}

type KeyResultDraft struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Current     string `json:"current"`
}
