// Package action é o núcleo do cliente: traduz uma chamada nomeada
// (serviço + ação + parâmetros lógicos) em um GET assinado contra a API de
// consulta do serviço.
//
// O fluxo de uma invocação é:
//
//	Dispatcher.Invoke -> MapParameters -> Builder.Build -> Transport.Get
//
// A tabela de ações de um Dispatcher é resolvida uma vez na construção e
// nunca muda depois; ações fora da tabela falham antes de qualquer rede.
package action
