package app

import (
	"github.com/obkschool/chatgame/internal/config"
	http_init "github.com/obkschool/chatgame/internal/delivery/http/init"
	http_message "github.com/obkschool/chatgame/internal/delivery/http/message"
	http_presence "github.com/obkschool/chatgame/internal/delivery/http/presence"
	http_room "github.com/obkschool/chatgame/internal/delivery/http/room"
	ws_room "github.com/obkschool/chatgame/internal/delivery/ws/room"
	infra_pg_init "github.com/obkschool/chatgame/internal/infra/postgres/init"
	infra_postgres_message "github.com/obkschool/chatgame/internal/infra/postgres/message"
	infra_postgres_room "github.com/obkschool/chatgame/internal/infra/postgres/room"
	infra_redis_init "github.com/obkschool/chatgame/internal/infra/redis/init"
	infra_redis_presence "github.com/obkschool/chatgame/internal/infra/redis/presence"
	usecase_message "github.com/obkschool/chatgame/internal/usecase/message"
	usecase_presence "github.com/obkschool/chatgame/internal/usecase/presence"
	usecase_room "github.com/obkschool/chatgame/internal/usecase/room"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	roomRepository := infra_postgres_room.New(pgConn)
	messageRepository := infra_postgres_message.New(pgConn)
	presenceRepository := infra_redis_presence.New(redisConn, "presence")

	roomUC := usecase_room.New(roomRepository)
	messageUC := usecase_message.New(messageRepository)
	presenceUC := usecase_presence.New(presenceRepository)

	hub := ws_room.NewHub(roomUC, messageUC, presenceUC)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC, presenceUC, hub))
	controllerPool.Add(http_message.New(messageUC, hub))
	controllerPool.Add(http_presence.New(presenceUC, hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
