// Copyright (C) 2024 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/l3montree-dev/partchain/shared"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var StartedAt = time.Now()

// Server only serves operational endpoints. The reconciliation itself has no HTTP surface.
type Server struct {
	Echo *echo.Echo
}

type infoResponse struct {
	GoVersion     string   `json:"goVersion"`
	NumGoroutines int      `json:"numGoroutines"`
	Hostname      string   `json:"hostname,omitempty"`
	UptimeSeconds int      `json:"uptimeSeconds"`
	Leader        bool     `json:"leader"`
	Organizations []string `json:"organizations"`
}

func NewServer(registry shared.DatabaseRegistry, leaderElector shared.LeaderElector, executor shared.LedgerExecutor) Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	registerMiddlewares(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(ctx echo.Context) error {
		sqlDB, err := registry.Admin().DB()
		if err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  "failed to get database instance",
			})
		}

		if err := sqlDB.PingContext(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
		}

		return ctx.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})
	e.GET("/info", func(ctx echo.Context) error {
		host, _ := os.Hostname()
		return ctx.JSON(http.StatusOK, infoResponse{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			Hostname:      host,
			UptimeSeconds: int(time.Since(StartedAt).Seconds()),
			Leader:        leaderElector.IsLeader(),
			Organizations: executor.Organizations(),
		})
	})

	return Server{Echo: e}
}

func registerLifecycle(lc fx.Lifecycle, srv Server, config shared.ReconcilerConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("starting server", "port", config.MetricsPort)
				if err := srv.Echo.Start(":" + config.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("server stopped", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Echo.Shutdown(ctx)
		},
	})
}
