package openapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// recordingServer — ServerInterface, запоминающий разобранные параметры.
type recordingServer struct {
	called      string
	audioParams GetAudioUrlParams
	genParams   ListGenerationsParams
}

func (s *recordingServer) GetAudioUrl(w http.ResponseWriter, _ *http.Request, params GetAudioUrlParams) {
	s.called, s.audioParams = "GetAudioUrl", params
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) UploadAudio(w http.ResponseWriter, _ *http.Request) {
	s.called = "UploadAudio"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) ListAudio(w http.ResponseWriter, _ *http.Request) {
	s.called = "ListAudio"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) GenerateAudio(w http.ResponseWriter, _ *http.Request) {
	s.called = "GenerateAudio"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) ListGenerations(w http.ResponseWriter, _ *http.Request, params ListGenerationsParams) {
	s.called, s.genParams = "ListGenerations", params
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) Debug(w http.ResponseWriter, _ *http.Request) {
	s.called = "Debug"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) HealthLive(w http.ResponseWriter, _ *http.Request) {
	s.called = "HealthLive"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) HealthReady(w http.ResponseWriter, _ *http.Request) {
	s.called = "HealthReady"
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	s.called = "GetMetrics"
	w.WriteHeader(http.StatusOK)
}

func TestHandlerFromMux_Routing(t *testing.T) {
	tests := []struct {
		method, target, want string
	}{
		{http.MethodGet, "/audio-url?language=english", "GetAudioUrl"},
		{http.MethodPost, "/upload", "UploadAudio"},
		{http.MethodGet, "/upload", "ListAudio"},
		{http.MethodPost, "/generate-audio", "GenerateAudio"},
		{http.MethodGet, "/generate-audio", "ListGenerations"},
		{http.MethodGet, "/debug", "Debug"},
		{http.MethodGet, "/health/live", "HealthLive"},
		{http.MethodGet, "/health/ready", "HealthReady"},
		{http.MethodGet, "/metrics", "GetMetrics"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			srv := &recordingServer{}
			h := HandlerFromMux(srv, chi.NewRouter())

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("статус = %d", rec.Code)
			}
			if srv.called != tt.want {
				t.Errorf("вызван %q, ожидался %q", srv.called, tt.want)
			}
		})
	}
}

func TestListGenerations_ParamBinding(t *testing.T) {
	srv := &recordingServer{}
	h := HandlerFromMux(srv, chi.NewRouter())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate-audio?language=english&voice=samara&limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	p := srv.genParams
	if p.Language == nil || *p.Language != "english" {
		t.Errorf("Language = %v", p.Language)
	}
	if p.Voice == nil || *p.Voice != "samara" {
		t.Errorf("Voice = %v", p.Voice)
	}
	if p.Limit == nil || *p.Limit != 5 {
		t.Errorf("Limit = %v", p.Limit)
	}
}

func TestListGenerations_NoParams(t *testing.T) {
	srv := &recordingServer{}
	h := HandlerFromMux(srv, chi.NewRouter())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/generate-audio", nil))

	if srv.genParams.Limit != nil || srv.genParams.Language != nil || srv.genParams.Voice != nil {
		t.Errorf("параметры должны быть nil: %+v", srv.genParams)
	}
}

func TestListGenerations_InvalidLimit(t *testing.T) {
	srv := &recordingServer{}
	var gotErr error
	h := HandlerWithOptions(srv, ChiServerOptions{
		BaseRouter: chi.NewRouter(),
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusBadRequest)
		},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate-audio?limit=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус = %d, ожидался 400", rec.Code)
	}
	if srv.called != "" {
		t.Errorf("реализация не должна вызываться, вызван %q", srv.called)
	}
	pe, ok := gotErr.(*InvalidParamFormatError)
	if !ok || pe.ParamName != "limit" {
		t.Errorf("ошибка = %v, ожидалась InvalidParamFormatError(limit)", gotErr)
	}
}
