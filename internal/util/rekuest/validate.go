package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/pkg/rherr"
	"github.com/reporthub/backend/internal/util"
	"github.com/reporthub/backend/internal/util/i18n"
)

var Validate = util.NewValidator()

// translator stays fixed to en: the API surface is English-only.
var translator ut.Translator

func init() {
	var err error
	translator, _ = i18n.UT.GetTranslator("en")
	err = enTranslations.RegisterDefaultTranslations(Validate, translator)
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	err = Validate.RegisterTranslation("grade", translator, func(ut ut.Translator) error {
		return nil
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field(), "A B C D F")
		return t
	})
	if err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation for function grade")
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// translate translates errors into ErrorResponses
func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := []*ErrorResponse{}

	var fe validator.FieldError

	for i := 0; i < len(ve); i++ {
		fe = ve[i]

		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}

	return trans
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

// ValidStruct validates dest using the validator singleton.
func ValidStruct(dest any) error {
	if err := validateStruct(dest); err != nil {
		return rherr.NewInvalidViolations(err)
	}

	return nil
}

// ValidQuery will get the query string from *fiber.Ctx using fiber#QueryParser(),
// and validate it using the validator singleton. If the validation passed it will write
// the parsed query to dest and return a nil, otherwise it will return an error. Notice
// that dest shall always be a pointer.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return rherr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(dest); err != nil {
		return rherr.NewInvalidViolations(err)
	}

	return nil
}
