package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// IDParam is the route parameter holding a numeric resource id.
	IDParam = "id"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
