// Package descriptor carrega e mantém em cache as definições declarativas dos
// serviços (host, versão, formato, método de assinatura) e das suas ações
// (nome de wire e tabela de parâmetros).
//
// Layout esperado em qualquer fonte:
//
//	<service>.yml           -> ServiceDefinition
//	<service>/<action>.yml  -> ActionDefinition (o nome da ação é o nome do arquivo)
//
// Fontes suportadas por NewSource: diretório local (file://), S3 (s3://),
// DynamoDB (dynamodb://), Redis (redis://) e Postgres (postgres://).
package descriptor
