// server.go — интерфейс HTTP-операций контракта и их маршрутизация на chi.
// Параметры query разбираются до вызова реализации; ошибки формата
// передаются в ErrorHandlerFunc.
package openapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// GetAudioUrlParams — параметры GET /audio-url.
type GetAudioUrlParams struct {
	Language *string `form:"language,omitempty" json:"language,omitempty"`
}

// ListGenerationsParams — параметры GET /generate-audio.
type ListGenerationsParams struct {
	Language *string `form:"language,omitempty" json:"language,omitempty"`
	Voice    *string `form:"voice,omitempty" json:"voice,omitempty"`
	Limit    *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface — операции, описанные в openapi.yaml.
type ServerInterface interface {
	// (GET /audio-url)
	GetAudioUrl(w http.ResponseWriter, r *http.Request, params GetAudioUrlParams)
	// (POST /upload)
	UploadAudio(w http.ResponseWriter, r *http.Request)
	// (GET /upload)
	ListAudio(w http.ResponseWriter, r *http.Request)
	// (POST /generate-audio)
	GenerateAudio(w http.ResponseWriter, r *http.Request)
	// (GET /generate-audio)
	ListGenerations(w http.ResponseWriter, r *http.Request, params ListGenerationsParams)
	// (GET /debug)
	Debug(w http.ResponseWriter, r *http.Request)
	// (GET /health/live)
	HealthLive(w http.ResponseWriter, r *http.Request)
	// (GET /health/ready)
	HealthReady(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	GetMetrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError — параметр запроса не удалось разобрать.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions — параметры HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper разбирает параметры и вызывает ServerInterface.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) GetAudioUrl(w http.ResponseWriter, r *http.Request) {
	var params GetAudioUrlParams

	if err := runtime.BindQueryParameter("form", true, false, "language", r.URL.Query(), &params.Language); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "language", Err: err})
		return
	}

	siw.handler.GetAudioUrl(w, r, params)
}

func (siw *serverInterfaceWrapper) ListGenerations(w http.ResponseWriter, r *http.Request) {
	var params ListGenerationsParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "language", query, &params.Language); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "language", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "voice", query, &params.Voice); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "voice", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.handler.ListGenerations(w, r, params)
}

// HandlerFromMux регистрирует операции на переданном роутере.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{BaseRouter: r})
}

// HandlerWithOptions регистрирует операции с заданными опциями.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := &serverInterfaceWrapper{
		handler:          si,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Get("/audio-url", wrapper.GetAudioUrl)
	r.Post("/upload", si.UploadAudio)
	r.Get("/upload", si.ListAudio)
	r.Post("/generate-audio", si.GenerateAudio)
	r.Get("/generate-audio", wrapper.ListGenerations)
	r.Get("/debug", si.Debug)
	r.Get("/health/live", si.HealthLive)
	r.Get("/health/ready", si.HealthReady)
	r.Get("/metrics", si.GetMetrics)

	return r
}
