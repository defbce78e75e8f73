package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raywall/fast-action-client/pkg/config"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/engine"
)

const usage = `uso: actionctl <comando> [flags]

comandos:
  invoke    -config client.yaml -service ecs -action describe_regions [-param k=v ...]
  actions   -config client.yaml -service ecs
  validate  -dir ./apis [-service ecs]`

// paramFlag acumula -param k=v repetidos.
type paramFlag map[string]interface{}

func (p paramFlag) String() string { return fmt.Sprint(map[string]interface{}(p)) }

func (p paramFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || k == "" {
		return fmt.Errorf("parâmetro deve ser chave=valor: %q", v)
	}
	p[k] = val
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "invoke":
		err = runInvoke(ctx, args[1:], stdout)
	case "actions":
		err = runActions(ctx, args[1:], stdout)
	case "validate":
		var ok bool
		ok, err = runValidate(ctx, args[1:], stdout)
		if err == nil && !ok {
			return 1 // Falha no CI
		}
	default:
		fmt.Fprintf(stderr, "comando desconhecido: %s\n%s\n", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "erro: %v\n", err)
		return 1
	}
	return 0
}

func loadEngine(ctx context.Context, path string) (*engine.ClientEngine, error) {
	cfg, err := config.NewLoader().Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return engine.NewClientEngine(ctx, cfg)
}

func runInvoke(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("invoke", flag.ContinueOnError)
	cfgPath := fs.String("config", "client.yaml", "arquivo de configuração (local ou s3://)")
	service := fs.String("service", "", "nome do serviço")
	actionName := fs.String("action", "", "nome da ação")
	params := paramFlag{}
	fs.Var(params, "param", "parâmetro lógico chave=valor (repetível)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *service == "" || *actionName == "" {
		return fmt.Errorf("flags -service e -action são obrigatórias")
	}

	ce, err := loadEngine(ctx, *cfgPath)
	if err != nil {
		return err
	}
	defer ce.Close()

	res, err := ce.Invoke(ctx, *service, *actionName, params)
	if err != nil {
		return err
	}

	if res.Data != nil {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Data)
	}
	_, err = fmt.Fprintln(stdout, string(res.Body))
	return err
}

func runActions(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("actions", flag.ContinueOnError)
	cfgPath := fs.String("config", "client.yaml", "arquivo de configuração (local ou s3://)")
	service := fs.String("service", "", "nome do serviço")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *service == "" {
		return fmt.Errorf("flag -service é obrigatória")
	}

	ce, err := loadEngine(ctx, *cfgPath)
	if err != nil {
		return err
	}
	defer ce.Close()

	d, err := ce.Client.Dispatcher(ctx, *service)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s (%s, versão %s)\n", d.Name(), d.BaseURL(), d.APIVersion())
	for _, name := range d.Actions() {
		fmt.Fprintf(stdout, "  %s\n", name)
	}
	return nil
}

func runValidate(ctx context.Context, args []string, stdout io.Writer) (bool, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	dir := fs.String("dir", "", "diretório de descritores")
	service := fs.String("service", "", "valida apenas este serviço")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if *dir == "" {
		return false, fmt.Errorf("flag -dir é obrigatória")
	}

	src := descriptor.NewFileSource(*dir)
	services := []string{*service}
	if *service == "" {
		var err error
		if services, err = src.ListServices(ctx); err != nil {
			return false, err
		}
	}

	report := engine.Analyze(ctx, src, services)

	// Output JSON para integração com pipelines
	if os.Getenv("OUTPUT_FORMAT") == "json" {
		return report.Valid, json.NewEncoder(stdout).Encode(report)
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(stdout, "aviso: %s\n", w)
	}
	if !report.Valid {
		fmt.Fprintln(stdout, "descritores contêm erros:")
		for _, e := range report.Errors {
			fmt.Fprintf(stdout, " - %s\n", e)
		}
		return false, nil
	}
	fmt.Fprintf(stdout, "%d serviço(s) válido(s)\n", len(services))
	return true, nil
}
