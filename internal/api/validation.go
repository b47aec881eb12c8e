package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldDetail is one entry of a validation-error payload. The shape follows
// the backend contract consumed by the dashboard: a "detail" list naming the
// offending field.
type fieldDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func validationDetail(field, msg string) gin.H {
	return gin.H{"detail": []fieldDetail{{
		Loc:  []string{"body", field},
		Msg:  msg,
		Type: "value_error",
	}}}
}

// bindingDetail converts a gin binding failure into the detail payload.
// Malformed JSON (not a field failure) gets a single message instead.
func bindingDetail(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"detail": err.Error()}
	}

	details := make([]fieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldDetail{
			Loc:  []string{"body", snakeCase(fe.Field())},
			Msg:  fmt.Sprintf("failed '%s' validation", fe.Tag()),
			Type: "value_error",
		})
	}
	return gin.H{"detail": details}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
