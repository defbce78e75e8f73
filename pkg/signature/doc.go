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
// Package signature implementa os algoritmos de assinatura usados pelas APIs
// de consulta (query-style) do provedor de nuvem.
//
// Visão Geral:
// Toda requisição é autenticada por uma assinatura calculada sobre a forma
// canônica dos seus parâmetros. Qualquer desvio na canonicalização é rejeitado
// pelo servidor como "assinatura inválida", sem indicar qual campo divergiu,
// por isso o algoritmo aqui é deliberadamente literal.
//
// Canonicalização (HMAC-SHA1):
//  1. Ordena as chaves em ordem de bytes.
//  2. Codifica chave e valor com Encode e junta os pares "k=v" com "&".
//  3. Monta a string-to-sign: "GET&%2F&" + Encode(query canônica).
//  4. HMAC-SHA1 com a chave "secret&", codificado em base64.
//
// Os métodos são selecionados pelo nome a partir de um registro fixo:
//
//	m, err := signature.Lookup("HMAC-SHA1")
//	if err != nil {
//		// erro de configuração, não de chamada
//	}
//	sig, _ := m.Generate(params, signature.Context{HTTPMethod: "GET", AccessKeySecret: secret})
//
// Os métodos não possuem estado, e uma única instância por algoritmo é
// compartilhada por todas as goroutines.
package signature
