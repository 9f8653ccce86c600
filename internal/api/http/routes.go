package httpapi

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/weather-normals-comparison/internal/render"
	"github.com/i474232898/weather-normals-comparison/internal/weather"
)

var validate = validator.New()

// ReportBuilder is the service surface the handlers depend on. Satisfied by
// *weather.Service.
type ReportBuilder interface {
	BuildReport(ctx context.Context, locationInput string, day time.Time) (*weather.Report, error)
}

// NewApp builds the Fiber app: central error handler, logging and panic
// recovery middleware, health endpoint, and the report routes.
func NewApp(service ReportBuilder) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-normals-comparison",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-normals-comparison",
		})
	})

	RegisterRoutes(app, service)
	return app
}

// RegisterRoutes wires the HTML pages and the JSON API into the Fiber app.
func RegisterRoutes(app *fiber.App, service ReportBuilder) {
	app.Get("/", func(c *fiber.Ctx) error {
		return sendForm(c, fiber.StatusOK, &render.FormData{Date: time.Now().UTC().Format("2006-01-02")})
	})

	app.Post("/", func(c *fiber.Ctx) error {
		req := reportRequest{
			Location: c.FormValue("location"),
			Date:     c.FormValue("date"),
		}
		form := &render.FormData{Query: req.Location, Date: req.Date}

		if err := validate.Struct(req); err != nil {
			form.Error = `Enter a 5-digit ZIP code or a "City, State" pair.`
			return sendForm(c, fiber.StatusBadRequest, form)
		}
		day, err := req.day()
		if err != nil {
			form.Error = "Dates must look like 2026-08-22."
			return sendForm(c, fiber.StatusBadRequest, form)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
		defer cancel()

		rep, err := service.BuildReport(ctx, req.Location, day)
		if err != nil {
			form.Error = userMessage(err)
			return sendForm(c, statusForError(err), form)
		}

		var buf bytes.Buffer
		if err := render.RenderResult(&buf, render.NewResultData(rep)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render result page")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/report", func(c *fiber.Ctx) error {
		req := reportRequest{
			Location: c.Query("location"),
			Date:     c.Query("date"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		day, err := req.day()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
		defer cancel()

		rep, err := service.BuildReport(ctx, req.Location, day)
		if err != nil {
			return fiber.NewError(statusForError(err), userMessage(err))
		}

		return c.JSON(fiber.Map{
			"report":    rep,
			"narrative": rep.Delta.RangeState.Sentence(),
		})
	})
}

// reportRequest holds the location query and the optional target date.
type reportRequest struct {
	Location string `validate:"required"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
}

// day parses the requested date, defaulting to today in UTC.
func (r reportRequest) day() (time.Time, error) {
	if r.Date == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", r.Date)
}

func sendForm(c *fiber.Ctx, status int, data *render.FormData) error {
	var buf bytes.Buffer
	if err := render.RenderForm(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render form page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// statusForError maps the run's failure modes onto HTTP statuses: bad input
// is the caller's fault, missing data is a not-found, anything upstream is a
// bad gateway.
func statusForError(err error) int {
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrLocationNotFound),
		errors.Is(err, weather.ErrNoStationsFound),
		errors.Is(err, weather.ErrNoQualifyingStation),
		errors.Is(err, weather.ErrNormalsRowMissing),
		errors.Is(err, weather.ErrNoObservationStation),
		errors.Is(err, weather.ErrNoForecastForToday):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// userMessage reduces a wrapped run error to its sentinel's message.
func userMessage(err error) string {
	for _, sentinel := range []error{
		weather.ErrInvalidInput,
		weather.ErrLocationNotFound,
		weather.ErrNoStationsFound,
		weather.ErrNoQualifyingStation,
		weather.ErrNormalsRowMissing,
		weather.ErrNoObservationStation,
		weather.ErrNoForecastForToday,
		weather.ErrUpstreamUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "failed to build the report"
}
