package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wonnda/internal/config"
	"wonnda/internal/db"
	"wonnda/internal/domain"
	"wonnda/internal/email"
	"wonnda/internal/repository"
	"wonnda/internal/service"
	"wonnda/internal/wizard"
)

// signup_cli recorre el wizard de alta desde la terminal contra la base configurada.
// Con APP_ENV=development el código de verificación se muestra en pantalla.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	var sender email.Sender = email.NewDisabledSender("email sender not configured")
	if cfg.ResendAPIKey != "" {
		if s, err := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom); err == nil {
			sender = s
		}
	}

	accountSvc := service.NewAccountService(logger,
		repository.NewPgUserRepository(pool),
		repository.NewPgVerificationCodeRepository(pool),
		repository.NewPgAccountRepository(pool),
		sender,
		nil,
		service.WithOTPEcho(cfg.IsDevelopment()),
	)
	onboardingSvc := service.NewOnboardingService(logger, repository.NewPgOnboardingRepository(pool), accountSvc)

	fmt.Println("===== PrivateLabelify Signup =====")
	fmt.Print("Tipo de cuenta [retailer/supplier] o ID de borrador para retomar: ")
	choice := readLine(reader)

	var state service.DraftState
	switch domain.Role(choice) {
	case domain.RoleRetailer, domain.RoleSupplier:
		state, err = onboardingSvc.StartDraft(ctx, domain.Role(choice))
	default:
		state, err = onboardingSvc.GetDraft(ctx, choice)
	}
	if err != nil {
		log.Fatalf("iniciar borrador: %v", err)
	}
	fmt.Printf("Borrador %s\n", state.Draft.ID)

	for !state.Draft.Completed && state.Step != nil {
		step := *state.Step
		fmt.Printf("\n--- Paso %d/%d: %s ---\n", step.Number, state.TotalSteps, step.Title)
		fmt.Println("(escribe :back para volver al paso anterior)")

		answer, back := promptStep(reader, step)
		if back {
			if state, err = onboardingSvc.Back(ctx, state.Draft.ID); err != nil {
				log.Fatalf("volver: %v", err)
			}
			continue
		}
		raw, err := json.Marshal(answer)
		if err != nil {
			log.Fatalf("serializar respuesta: %v", err)
		}

		res, err := onboardingSvc.SubmitStep(ctx, state.Draft.ID, step.Number, raw)
		if err != nil {
			printError(err)
			continue
		}
		if res.OTP != "" {
			fmt.Printf("Código de verificación (desarrollo): %s\n", res.OTP)
		}
		if res.Account != nil {
			fmt.Printf("\nCuenta creada: %s (%s). Dashboard: %s\n", res.Account.UserID, res.Account.Role, res.Account.RedirectURL)
		}
		state = res.DraftState
	}
}

// promptStep pide cada campo del paso. Devuelve back=true si el usuario pidió volver.
func promptStep(reader *bufio.Reader, step wizard.Step) (map[string]any, bool) {
	answer := map[string]any{}
	for _, f := range step.Fields {
		label := f.Label
		if !f.Required {
			label += " (opcional)"
		}
		if len(f.Options) > 0 {
			for i, opt := range f.Options {
				fmt.Printf("  [%d] %s\n", i+1, opt)
			}
		}
		switch f.Kind {
		case wizard.KindMultiSelect:
			fmt.Printf("%s (números separados por coma): ", label)
		case wizard.KindTagList:
			fmt.Printf("%s (valores separados por coma): ", label)
		case wizard.KindMOQList:
			fmt.Printf("%s (tipo:cantidad separados por coma): ", label)
		case wizard.KindBoolean:
			fmt.Printf("%s [s/n]: ", label)
		default:
			fmt.Printf("%s: ", label)
		}

		input := readLine(reader)
		if input == ":back" {
			return nil, true
		}
		if input == "" && !f.Required {
			continue
		}
		answer[f.Name] = parseField(f, input)
	}
	return answer, false
}

func parseField(f wizard.Field, input string) any {
	switch f.Kind {
	case wizard.KindSelect:
		return pickOption(f.Options, input)
	case wizard.KindMultiSelect:
		var out []string
		for _, part := range splitList(input) {
			out = append(out, pickOption(f.Options, part))
		}
		return out
	case wizard.KindTagList:
		return splitList(input)
	case wizard.KindMOQList:
		var out []domain.MOQ
		for _, part := range splitList(input) {
			typ, qty, _ := strings.Cut(part, ":")
			out = append(out, domain.MOQ{Type: strings.TrimSpace(typ), Quantity: strings.TrimSpace(qty)})
		}
		return out
	case wizard.KindBoolean:
		return strings.EqualFold(input, "s") || strings.EqualFold(input, "y")
	default:
		return input
	}
}

// pickOption acepta el número de la opción o el texto exacto.
func pickOption(options []string, input string) string {
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1]
	}
	return input
}

func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printError(err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(verr.Message)
		for _, field := range verr.Fields.Fields() {
			fmt.Printf("  %s: %s\n", field, strings.Join(verr.Fields[field], ", "))
		}
		return
	}
	fmt.Printf("Error: %v\n", err)
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
