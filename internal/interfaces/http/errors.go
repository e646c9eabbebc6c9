package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/infrastructure/metrics"
)

// writeError traduce un error de dominio a su respuesta HTTP. El Kind viaja en
// el campo code del cuerpo; los campos máquina (missing_fields, ceiling, plan)
// en fields. Cualquier error no estructurado es un 500 opaco.
func writeError(c *fiber.Ctx, err error) error {
	de, ok := domain.AsError(err)
	if !ok {
		log.Error().Err(err).Str("path", c.Path()).Msg("error no estructurado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	status := fiber.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	case domain.KindNotFound:
		status = fiber.StatusNotFound
	case domain.KindForbidden:
		status = fiber.StatusForbidden
	case domain.KindConflict:
		status = fiber.StatusConflict
	case domain.KindQuotaOfferActive, domain.KindQuotaOfferFeatured, domain.KindQuotaLocation:
		// Mismo status que forbidden: el plan no alcanza, no es culpa del cuerpo.
		status = fiber.StatusForbidden
		plan, _ := de.Fields["plan"].(string)
		metrics.QuotaDenials.WithLabelValues(string(de.Kind), plan).Inc()
	case domain.KindDependency:
		log.Error().Err(err).Str("path", c.Path()).Msg("fallo de dependencia")
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    string(de.Kind),
		Message: de.Message,
		Fields:  de.Fields,
	})
}
