package constants

import (
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	RequestStart ContextKey = "requestStart"
	SessionKey   ContextKey = "session"
)

// Validate is the shared validator instance used by DTO Ok() methods.
var Validate = validator.New()

// FormDecoder decodes url.Values from browser form posts into DTO structs.
var FormDecoder = form.NewDecoder()
