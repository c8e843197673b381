package ports

import (
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
)

// OracleObserver receives one notification per oracle call.
type OracleObserver interface {
	ObserveCall(oracle string, body domain.Body, elapsed time.Duration, err error)
}
