package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/raywall/fast-action-client/pkg/action"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/signature"
)

// ValidationReport contém o resultado detalhado da análise.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Services []string `json:"services"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationReport) errorf(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationReport) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Analyze inspeciona os descritores dos serviços informados além das regras
// estruturais: método de assinatura registrado, nomes de wire repetidos e
// colisão com os campos padrão do envelope.
func Analyze(ctx context.Context, src descriptor.Source, services []string) *ValidationReport {
	report := &ValidationReport{Valid: true, Services: services, Errors: []string{}, Warnings: []string{}}

	for _, name := range services {
		svc, err := src.LoadService(ctx, name)
		if err != nil {
			report.errorf("%s: %v", name, err)
			continue
		}
		actions, err := src.LoadActions(ctx, name)
		if err != nil {
			report.errorf("%s: %v", name, err)
			continue
		}
		if err := descriptor.Validate(name, svc, actions); err != nil {
			report.errorf("%v", err)
		}

		method := svc.SignatureMethod
		if method == "" {
			method = signature.HMACSHA1Name
		}
		if _, err := signature.Lookup(method); err != nil {
			report.errorf("%s: %v", name, err)
		}
		if svc.Schema == "http" {
			report.warnf("%s: schema http envia a assinatura sem TLS", name)
		}
		if len(actions) == 0 {
			report.warnf("%s: nenhuma ação declarada", name)
		}

		for _, actionName := range descriptor.ActionNames(actions) {
			analyzeAction(report, name, actionName, actions[actionName])
		}
	}
	return report
}

func analyzeAction(report *ValidationReport, service, actionName string, act *descriptor.ActionDefinition) {
	byWire := make(map[string][]string)
	for logical, p := range act.Parameters {
		byWire[p.Parameter] = append(byWire[p.Parameter], logical)
	}

	wires := make([]string, 0, len(byWire))
	for w := range byWire {
		wires = append(wires, w)
	}
	sort.Strings(wires)

	for _, wire := range wires {
		logicals := byWire[wire]
		if len(logicals) > 1 {
			sort.Strings(logicals)
			report.errorf("%s/%s: parâmetros %v usam o mesmo nome de wire %q", service, actionName, logicals, wire)
		}
		if reservedFields[wire] {
			report.warnf("%s/%s: %q é sobrescrito pelo envelope", service, actionName, wire)
		}
	}
}

var reservedFields = map[string]bool{
	action.FieldFormat:           true,
	action.FieldVersion:          true,
	action.FieldAction:           true,
	action.FieldAccessKeyID:      true,
	action.FieldTimestamp:        true,
	action.FieldSignatureMethod:  true,
	action.FieldSignatureVersion: true,
	action.FieldSignatureNonce:   true,
	signature.SignatureKey:       true,
}
