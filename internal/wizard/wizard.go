// Package wizard define la secuencia de pasos del alta por rol: qué campos tiene cada
// paso, cuándo se puede avanzar y qué acción dispara "continuar".
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wonnda/internal/domain"
	"wonnda/internal/validation"
)

const (
	StepCredentials          = "credentials"
	StepOTP                  = "otp"
	StepPersonalInfo         = "personal_info"
	StepCompanyInfo          = "company_info"
	StepBusinessGoals        = "business_goals"
	StepLaunchExperience     = "launch_experience"
	StepCategoryInterests    = "category_interests"
	StepProductPreferences   = "product_preferences"
	StepCompanyType          = "company_type"
	StepUserRole             = "user_role"
	StepTeamRevenue          = "team_revenue"
	StepOfferings            = "offerings"
	StepProductionFacilities = "production_facilities"
	StepSupportGoals         = "support_goals"
	StepCompanyDescription   = "company_description"
)

// Action es el efecto que dispara "continuar" en un paso.
type Action string

const (
	ActionNone          Action = ""
	ActionSendOTP       Action = "send_otp"
	ActionVerifyOTP     Action = "verify_otp"
	ActionCreateAccount Action = "create_account"
)

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownStep     = errors.New("unknown step")
	ErrMalformedAnswer = errors.New("malformed step answer")
)

type FieldKind string

const (
	KindText        FieldKind = "text"
	KindEmail       FieldKind = "email"
	KindPassword    FieldKind = "password"
	KindOTP         FieldKind = "otp"
	KindPhone       FieldKind = "phone"
	KindURL         FieldKind = "url"
	KindTextarea    FieldKind = "textarea"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindBoolean     FieldKind = "boolean"
	KindMOQList     FieldKind = "moq_list"
	KindTagList     FieldKind = "tag_list"
)

// Field describe un campo que el paso posee.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// Step es un paso del wizard. Number empieza en 1.
type Step struct {
	Number int     `json:"number"`
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Action Action  `json:"action,omitempty"`

	decode func(json.RawMessage) (Answer, error)
}

// Decode convierte el JSON recibido en la respuesta tipada del paso.
func (s Step) Decode(raw json.RawMessage) (Answer, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = json.RawMessage("{}")
	}
	return s.decode(raw)
}

func decodeAs[T Answer](raw json.RawMessage) (Answer, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	return v, nil
}

// Sequence devuelve los pasos del rol en orden.
func Sequence(role domain.Role) ([]Step, error) {
	var steps []Step
	switch role {
	case domain.RoleRetailer:
		steps = retailerSteps
	case domain.RoleSupplier:
		steps = supplierSteps
	default:
		return nil, ErrUnknownRole
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Number = i + 1
		out[i] = s
	}
	return out, nil
}

// StepAt devuelve el paso number (1-based) del rol.
func StepAt(role domain.Role, number int) (Step, error) {
	steps, err := Sequence(role)
	if err != nil {
		return Step{}, err
	}
	if number < 1 || number > len(steps) {
		return Step{}, ErrUnknownStep
	}
	return steps[number-1], nil
}

// CanAdvance valida la respuesta con el schema del paso más los chequeos de completitud
// de la UI. Devuelve nil si se puede continuar.
func CanAdvance(answer Answer) validation.FieldErrors {
	errs := validation.Validate(answer)
	if a, ok := answer.(OfferingsAnswer); ok {
		for _, moq := range a.MOQQuantities {
			if strings.TrimSpace(moq.Type) == "" || strings.TrimSpace(moq.Quantity) == "" {
				if errs == nil {
					errs = validation.FieldErrors{}
				}
				errs.Add("moqQuantities", "Please complete each MOQ entry")
				break
			}
		}
	}
	return errs
}

// AssembleRetailer arma el payload completo a partir de las respuestas guardadas por paso.
// Los pasos sin respuesta quedan vacíos y los reporta la validación final.
func AssembleRetailer(answers map[string]json.RawMessage) (validation.RetailerSignup, error) {
	var out validation.RetailerSignup
	for _, step := range retailerSteps {
		raw, ok := answers[step.ID]
		if !ok {
			continue
		}
		answer, err := step.Decode(raw)
		if err != nil {
			return validation.RetailerSignup{}, err
		}
		if ra, ok := answer.(retailerAnswer); ok {
			ra.applyRetailer(&out)
		}
	}
	return out, nil
}

// AssembleSupplier es el equivalente de AssembleRetailer para proveedores.
func AssembleSupplier(answers map[string]json.RawMessage) (validation.SupplierSignup, error) {
	var out validation.SupplierSignup
	for _, step := range supplierSteps {
		raw, ok := answers[step.ID]
		if !ok {
			continue
		}
		answer, err := step.Decode(raw)
		if err != nil {
			return validation.SupplierSignup{}, err
		}
		if sa, ok := answer.(supplierAnswer); ok {
			sa.applySupplier(&out)
		}
	}
	return out, nil
}
