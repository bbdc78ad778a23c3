package http

import (
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
)

type Handler struct {
	services *service.Services

	// hashKey enables the HashSHA256 body check when not empty.
	hashKey string
	ids     *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	if hashKey != "" {
		utils.InitHasherPool(hashKey)
	}

	logger.Info().Bool("body_hash_check", hashKey != "").Msg("http handler created")
	return &Handler{
		services: services,
		hashKey:  hashKey,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
