package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/okian/prospect/internal/config"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PROSPECT_ADDR", ":8080")
			_ = os.Setenv("PROSPECT_MODEL", "v3")
			defer func() {
				_ = os.Unsetenv("PROSPECT_ADDR")
				_ = os.Unsetenv("PROSPECT_MODEL")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Model, convey.ShouldEqual, "v3")
			})
		})

		convey.Convey("When testing service creation from config", func() {
			cfg := config.New(context.Background())
			svc := newService(cfg, logger.Nop())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()
			convey.So(svc.DefaultModel(), convey.ShouldEqual, cfg.Model)
		})
	})
}

func TestRouter(t *testing.T) {
	convey.Convey("Given the assembled router", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		ts := httptest.NewServer(newRouter(ctx, cfg, svc))
		defer ts.Close()

		get := func(path string) *http.Response {
			resp, err := http.Get(ts.URL + path)
			convey.So(err, convey.ShouldBeNil)
			return resp
		}

		convey.Convey("Then the health, docs and page routes respond", func() {
			for _, path := range []string{"/healthz", "/api-docs", "/openapi.yaml", "/", "/v1/models"} {
				resp := get(path)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then a valuation is served end to end", func() {
			resp := get("/v1/valuations?rank=12&position=ss")
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var res model.ValuationResult
			convey.So(json.NewDecoder(resp.Body).Decode(&res), convey.ShouldBeNil)
			convey.So(res.Model, convey.ShouldEqual, cfg.Model)
			convey.So(res.Rank, convey.ShouldEqual, 12)
		})

		convey.Convey("Then invalid ranks are rejected with 400", func() {
			req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/valuations", strings.NewReader(`{"rank":0,"position":"SS"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}
