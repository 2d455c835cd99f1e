package api

import (
	"github.com/phrazzld/physref/internal/catalog"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/domain/calc"
)

// PageData is the view model shared by all pages.
type PageData struct {
	Title    string
	LoggedIn bool
	UserID   int64
	Notices  []domain.Notice
	Topics   []catalog.Topic

	// Form pages
	Form   map[string]string
	Errors map[string]string
	Result *calc.Result

	// Formula page
	Topic catalog.Topic

	// Account page
	User *domain.User

	// Error page
	Status  int
	Message string
	TraceID string
}

// fieldView is what the form partials render for one input.
type fieldView struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}
