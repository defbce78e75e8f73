// Package handler expõe o cliente em runtimes externos: Lambda, um gateway
// HTTP local e o hot reload dos descritores via SQS.
package handler
