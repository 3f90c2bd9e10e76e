package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/staffboard/internal/adapters/devapi"
	repository "github.com/okian/staffboard/internal/adapters/repository"
	service "github.com/okian/staffboard/internal/app"
	"github.com/okian/staffboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func devBackend() *httptest.Server {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := devapi.Seed(ctx, store); err != nil {
		panic(err)
	}
	return httptest.NewServer(devapi.New(store).NewRouter(ctx))
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["backendURL"], ShouldEqual, "http://localhost:5000")
			So(stats["employeeID"], ShouldEqual, 1)
			So(stats["breakerMaxFailures"], ShouldEqual, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithBackendURL("http://backend:5000"),
			service.WithEmployeeID(2),
			service.WithRequestTimeout(250*time.Millisecond),
			service.WithBreaker(3, time.Second),
			service.WithEmployeeID(-1),
		)

		Convey("Then the options should be applied and invalid ones ignored", func() {
			stats := svc.GetStats()
			So(stats["backendURL"], ShouldEqual, "http://backend:5000")
			So(stats["employeeID"], ShouldEqual, 2)
			So(stats["requestTimeoutMS"], ShouldEqual, 250)
			So(stats["breakerMaxFailures"], ShouldEqual, 3)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service pointed at a running backend", t, func() {
		api := devBackend()
		defer api.Close()
		svc := service.New(service.WithBackendURL(api.URL))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When the handler is requested before starting", func() {
			_, err := svc.Handler(ctx)

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.Views(), ShouldBeNil)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it should be marked as started", func() {
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.Views(), ShouldNotBeNil)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And the dashboard is served from the backend", func() {
				h, err := svc.Handler(ctx)
				So(err, ShouldBeNil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employee_dashboard", http.NoBody))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `<ul id="skill-list"><li>Go</li><li>SQL</li></ul>`)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, err := svc.Handler(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_EmployeeScope(t *testing.T) {
	Convey("Given a service configured for employee 2", t, func() {
		api := devBackend()
		defer api.Close()
		svc := service.New(service.WithBackendURL(api.URL), service.WithEmployeeID(2))
		defer svc.Stop()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		h, err := svc.Handler(ctx)
		So(err, ShouldBeNil)

		Convey("When the dashboard is requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employee_dashboard", http.NoBody))

			Convey("Then the per-employee containers show that employee", func() {
				So(w.Body.String(), ShouldContainSubstring, `<ul id="skills-list"><li>Python</li></ul>`)
			})
		})
	})
}

func TestService_StartWithBadURL(t *testing.T) {
	Convey("Given a service with a relative backend url", t, func() {
		svc := service.New(service.WithBackendURL("/api"))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then ErrStart is returned and nothing is started", func() {
				So(errors.Is(err, service.ErrStart), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}
