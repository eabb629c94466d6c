package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Flashes []string    `json:"flashes"`
}

// PageResponse wraps a page view together with the flash messages queued for it.
func PageResponse(data interface{}, flashes []string) Response {
	if flashes == nil {
		flashes = []string{}
	}
	return Response{
		Success: true,
		Data:    data,
		Flashes: flashes,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
		Flashes: []string{},
	}
}

type EntryPage struct {
	LoggedIn bool `json:"logged_in"`
	UserID   uint `json:"user_id,omitempty"`
}

type QuotesPage struct {
	User   ProfileResponse `json:"user"`
	Quotes []QuoteView     `json:"quotes"`
}

type UserQuotesPage struct {
	User   ProfileResponse `json:"user"`
	Quotes []QuoteView     `json:"quotes"`
}
