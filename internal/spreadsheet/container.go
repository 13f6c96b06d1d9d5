package spreadsheet

type SpreadsheetContainer struct {
	Handler *Handler
}

func NewSpreadsheetContainer() *SpreadsheetContainer {
	service := NewService()
	handler := NewHandler(service)

	return &SpreadsheetContainer{
		Handler: handler,
	}
}
