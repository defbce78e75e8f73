// Package fastactionclient é um cliente genérico para APIs de consulta
// assinadas: cada chamada é um GET com todos os parâmetros na query string,
// assinado com HMAC-SHA1 sobre a forma canônica da requisição.
//
// Visão Geral:
// Nenhum serviço remoto é codificado no cliente. Serviços e ações são
// descritos em YAML e resolvidos em tempo de execução por nome:
//
//	apis/
//	  ecs.yml                     # host, schema, version, format, signature_method
//	  ecs/
//	    describe_instances.yml    # action + mapa de parâmetros lógicos -> wire
//
// Sub-Pacotes Principais:
//
// 1. pkg/signature:
//   - Codificação RFC 3986, query canônica, StringToSign e HMAC-SHA1.
//   - Registro de métodos de assinatura por nome.
//
// 2. pkg/descriptor:
//   - Definições de serviço e ação, validação e Registry com cache.
//   - Fontes: diretório local, S3, DynamoDB, Redis e PostgreSQL.
//
// 3. pkg/action:
//   - MapParameters (allow-list), Builder (envelope + assinatura) e Dispatcher.
//   - Client com um Dispatcher por serviço e reload dos descritores.
//
// 4. pkg/config, pkg/logger, pkg/observability:
//   - client.yaml com interpolação ${env.X}, ${ssm./path} e ${secret.id}.
//   - zerolog e métricas Datadog (statsd).
//
// 5. pkg/handler e cmd/:
//   - Lambda, gateway HTTP local e hot reload via SQS.
//   - actionctl (invoke, actions, validate) e o emulador local.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/raywall/fast-action-client/pkg/action"
//		"github.com/raywall/fast-action-client/pkg/descriptor"
//	)
//
//	func main() {
//		ctx := context.Background()
//		reg := descriptor.NewRegistry(descriptor.NewFileSource("./apis"))
//
//		ecs, err := action.NewDispatcher(ctx, "ecs", reg, action.Credentials{
//			AccessKeyID:     "my-id",
//			AccessKeySecret: "my-secret",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		res, err := ecs.Invoke(ctx, "describe_instances", map[string]interface{}{
//			"region_id": "cn-hangzhou",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(res.Data.(map[string]interface{})["TotalCount"])
//	}
package fastactionclient
