package handler

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
)

// SQSClient define a interface necessária para o reloader (permite Mocking)
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Reloader é satisfeito por *descriptor.Registry e *action.Client.
type Reloader interface {
	Reload() error
}

// SQSReloader escuta a fila de alterações de descritores e invalida o cache
// a cada mensagem recebida.
type SQSReloader struct {
	client     SQSClient
	queueURL   string
	reloader   Reloader
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewSQSReloader(client SQSClient, queueURL string, reloader Reloader, logger zerolog.Logger) *SQSReloader {
	return &SQSReloader{
		client:     client,
		queueURL:   queueURL,
		reloader:   reloader,
		retryDelay: 5 * time.Second,
		logger:     logger.With().Str("component", "sqs_reloader").Logger(),
	}
}

// Start inicia o monitoramento (bloqueante até ctx ser cancelado).
func (s *SQSReloader) Start(ctx context.Context) {
	if s.queueURL == "" {
		s.logger.Warn().Msg("URL da fila SQS não configurada. Hot reload dos descritores desativado.")
		return
	}

	s.logger.Info().Str("queue", s.queueURL).Msg("monitorando fila SQS para reload dos descritores")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("parando monitoramento SQS")
			return
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20, // Long polling
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Dur("retry_in", s.retryDelay).Msg("erro no SQS")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryDelay):
			}
			continue
		}
		if len(out.Messages) == 0 {
			continue
		}

		// Um reload por lote basta: o cache inteiro é descartado.
		s.logger.Info().Int("messages", len(out.Messages)).Msg("alteração de descritores recebida")
		if err := s.reloader.Reload(); err != nil {
			s.logger.Error().Err(err).Msg("falha no reload; mensagens mantidas na fila")
			continue
		}
		s.logger.Info().Msg("descritores recarregados")

		for _, msg := range out.Messages {
			if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: msg.ReceiptHandle,
			}); err != nil {
				s.logger.Warn().Err(err).Msg("falha ao remover mensagem")
			}
		}
	}
}
