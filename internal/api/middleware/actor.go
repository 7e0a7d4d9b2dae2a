package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kyros-barber/KB-BookingService/internal/api/handlers"
	"github.com/kyros-barber/KB-BookingService/internal/domain"
)

// Заголовки, проставляемые доверенным шлюзом после аутентификации
const (
	HeaderBusinessID = "X-Business-ID"
	HeaderBranchID   = "X-Branch-ID"
	HeaderRole       = "X-Role"
)

type actorKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Actor извлекает контекст актора из заголовков шлюза и кладет его
// в контекст запроса. Запросы без корректного актора отклоняются
func Actor(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := parseActor(r)
			if !ok {
				log.Warn("%s %s - missing or malformed actor headers", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить учетную запись")
				return
			}

			if err := actor.Validate(); err != nil {
				log.Warn("%s %s - invalid actor context: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить учетную запись")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom возвращает актора запроса
// Вызывается только за middleware Actor, поэтому отсутствие значения
// означает ошибку конфигурации маршрутов
func ActorFrom(ctx context.Context) (domain.ActorContext, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.ActorContext)
	return actor, ok
}

func parseActor(r *http.Request) (domain.ActorContext, bool) {
	var actor domain.ActorContext

	rawBusiness := r.Header.Get(HeaderBusinessID)
	if rawBusiness == "" {
		return actor, false
	}
	businessID, err := strconv.ParseInt(rawBusiness, 10, 64)
	if err != nil {
		return actor, false
	}
	actor.BusinessID = businessID

	actor.Role = domain.Role(r.Header.Get(HeaderRole))

	if rawBranch := r.Header.Get(HeaderBranchID); rawBranch != "" {
		branchID, err := strconv.ParseInt(rawBranch, 10, 64)
		if err != nil {
			return actor, false
		}
		actor.BranchID = &branchID
	}

	return actor, true
}
