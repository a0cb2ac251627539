package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/thumbkit/pkg/buildinfo"
	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/errors"
	reqio "github.com/matzehuels/thumbkit/pkg/io"
	"github.com/matzehuels/thumbkit/pkg/pipeline"
	"github.com/matzehuels/thumbkit/pkg/render/sink"
)

// Response headers set on thumbnail responses.
const (
	HeaderCache       = "X-Thumbkit-Cache"
	HeaderRequestHash = "X-Thumbkit-Request-Hash"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, canvas.Presets())
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale: %q is not a number", v))
			return
		}
		opts.Scale = scale
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", v))
			return
		}
		opts.Refresh = refresh
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.Wrap(errors.ErrCodeTimeout, err, "render timed out after %s", s.renderTimeout)
		}
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit && pipeline.Cacheable(format) {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(HeaderCache, cacheStatus)
	w.Header().Set(HeaderRequestHash, res.RequestHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	root, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(root)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// options decodes the request body into pipeline options.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	req, err := s.decode(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Request:  req,
		Logger:   s.logger,
		Measurer: s.measurer,
	}, nil
}

func (s *Server) decode(r *http.Request) (*canvas.Request, error) {
	format := bodyFormat(r.Header.Get("Content-Type"))
	if format == "" {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", r.Header.Get("Content-Type"))
	}
	body := http.MaxBytesReader(nil, r.Body, s.maxBodyBytes)
	req, err := reqio.ReadRequest(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBodyBytes)
		}
		return nil, err
	}
	return req, nil
}

// bodyFormat maps a Content-Type to a request format. A missing content
// type is treated as JSON.
func bodyFormat(contentType string) string {
	if contentType == "" {
		return reqio.FormatJSON
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mt {
	case "application/json", "text/json":
		return reqio.FormatJSON
	case "application/toml", "text/toml":
		return reqio.FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return reqio.FormatYAML
	}
	return ""
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := message(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// message is the user-facing text of err, including the cause of a
// wrapped error.
func message(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errors.UserMessage(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
