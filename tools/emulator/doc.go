// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package emulator fornece um servidor local que imita uma API de consulta
// assinada (GET / com todos os parâmetros na query string), configurável via
// JSON, para desenvolvimento e testes de integração sem credenciais reais.
//
// Cada requisição passa pelas mesmas verificações de um serviço real, nesta
// ordem:
//
//   - Envelope completo (Format, Version, Action, AccessKeyId, Timestamp,
//     SignatureMethod, SignatureVersion, SignatureNonce, Signature), senão
//     400 MissingParameter.
//   - AccessKeyId conhecido, senão 404 InvalidAccessKeyId.NotFound.
//   - Assinatura recalculada com o segredo configurado, senão
//     400 SignatureDoesNotMatch.
//   - Versão da API (quando configurada), senão 400 InvalidVersion.
//   - Ação configurada, senão 404 InvalidAction.NotFound.
//
// Erros seguem o corpo {"Code", "Message", "RequestId"} e respostas de mapa
// recebem um RequestId quando não trazem um.
//
// Estrutura de Configuração (JSON):
//
//	[
//	  {
//	    "port": 8080,
//	    "access_key_id": "testid",
//	    "access_key_secret": "testsecret",
//	    "version": "2014-05-26",
//	    "actions": [
//	      {
//	        "action": "DescribeRegions",
//	        "response": { "status": 200, "body": { "Regions": ["cn-hangzhou"] } }
//	      },
//	      {
//	        "action": "DescribeInstances",
//	        "required": ["RegionId"],
//	        "filters": [{ "name": "RegionId", "maps_to": "region" }],
//	        "data": [
//	          { "id": "i-1", "region": "cn-hangzhou" },
//	          { "id": "i-2", "region": "us-west-1" }
//	        ],
//	        "response_on_no_match": {
//	          "status": 404,
//	          "body": { "Code": "InvalidRegionId.NotFound", "Message": "region" }
//	        }
//	      }
//	    ]
//	  }
//	]
//
// Ações com data respondem {"Items": [...], "TotalCount": n} com os itens
// cujos campos casam com os filtros presentes na requisição.
package emulator
