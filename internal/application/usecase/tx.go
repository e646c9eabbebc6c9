package usecase

import (
	"context"

	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a UNA transacción. Es el punto
// donde la secuencia conteo-de-cuota → escritura se vuelve una unidad
// bloqueable: el engine por sí solo no da exclusión mutua (dos peticiones
// concurrentes pueden leer el mismo conteo), así que los casos de uso que
// afectan capacidad envuelven Check + insert/update aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		offers repository.OfferRepository,
		locations repository.LocationRepository,
	) error) error
}
