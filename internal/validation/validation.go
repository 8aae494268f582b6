// Package validation declara los schemas de cada paso del signup y los valida con
// go-playground/validator. Los mismos schemas se usan para habilitar el avance del
// wizard y para proteger el cuerpo de cada request en el servidor.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"wonnda/internal/domain"
)

// PasswordMinLength es el largo mínimo aceptado para contraseñas.
const PasswordMinLength = 12

// PasswordSymbols son los símbolos aceptados para el requisito de caracter especial.
const PasswordSymbols = "!@#$%^&*"

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
	otpPattern   = regexp.MustCompile(`^\d{4}$`)
)

// FieldErrors mapea el nombre del campo (como viaja en JSON) a sus mensajes.
type FieldErrors map[string][]string

// Add agrega un mensaje al campo evitando duplicados.
func (f FieldErrors) Add(field, message string) {
	for _, m := range f[field] {
		if m == message {
			return
		}
	}
	f[field] = append(f[field], message)
}

// Fields devuelve los nombres de campo con error, ordenados.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Has indica si el campo tiene al menos un error.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, field := range f.Fields() {
		parts = append(parts, field+": "+strings.Join(f[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

var enumTags = map[string][]string{
	"retailer_company_type":  domain.RetailerCompanyTypes,
	"retailer_revenue":       domain.RetailerAnnualRevenues,
	"business_goal":          domain.BusinessGoals,
	"product_category":       domain.ProductCategories,
	"supplier_company_type":  domain.SupplierCompanyTypes,
	"supplier_user_role":     domain.SupplierUserRoles,
	"team_size":              domain.TeamSizes,
	"supplier_revenue":       domain.SupplierAnnualRevenues,
	"production_outsourcing": domain.ProductionOutsourcingModes,
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return len(PasswordProblems(fl.Field().String())) == 0
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "otp", func(fl validator.FieldLevel) bool {
		return otpPattern.MatchString(fl.Field().String())
	})
	for tag, set := range enumTags {
		set := set
		mustRegister(v, tag, func(fl validator.FieldLevel) bool {
			return domain.OneOf(set, fl.Field().String())
		})
	}
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate aplica los tags `validate` de v. Devuelve nil si el valor es aceptado.
// Nunca entra en pánico: un valor que no es struct se reporta bajo la clave "_".
func Validate(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	out := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("_", "Invalid payload")
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if fe.Tag() == "password" {
			value, _ := fe.Value().(string)
			for _, msg := range PasswordProblems(value) {
				out.Add(field, msg)
			}
			continue
		}
		out.Add(field, messageFor(field, fe.Tag()))
	}
	return out
}

// ValidateExcept valida v ignorando los errores de los campos indicados.
func ValidateExcept(v any, skip ...string) FieldErrors {
	errs := Validate(v)
	for _, field := range skip {
		delete(errs, field)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PasswordProblems lista los requisitos de contraseña que p no cumple.
func PasswordProblems(p string) []string {
	var problems []string
	if utf8.RuneCountInString(p) < PasswordMinLength {
		problems = append(problems, "Password must be at least 12 characters")
	}
	if !strings.ContainsFunc(p, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		problems = append(problems, "Password must include an uppercase letter (A-Z)")
	}
	if !strings.ContainsFunc(p, func(r rune) bool { return r >= '0' && r <= '9' }) {
		problems = append(problems, "Password must include a number (0-9)")
	}
	if !strings.ContainsAny(p, PasswordSymbols) {
		problems = append(problems, "Password must include a special character (!@#$%^&*)")
	}
	return problems
}

// ValidOTP indica si code tiene la forma de un OTP (4 dígitos).
func ValidOTP(code string) bool {
	return otpPattern.MatchString(code)
}
